// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapdl/internal/cli/config"
	"github.com/leapstack-labs/leapdl/internal/cli/output"
)

// Sources written by SetupTestProject.
const (
	GraphSource = `edge(1, 2).
edge(2, 3).
path(?x, ?y) := edge(?x, ?y).
path(?x, ?z) := edge(?x, ?y), path(?y, ?z).
?path(1, ?y).
`
	LookupSource = `user('alice', 42).
name(?id, ?n) := user(?n, ?id), directory{io}(?id, ?n).
`
	ArityMismatchSource = `p(1).
p(1, 2).
`
	BrokenSource = `edge(1, 2)
edge(2, 3).
`
)

// SetupTestProject creates a temporary project with Datalog sources:
//
//	graph.dl            valid, no diagnostics
//	lookup.dl           valid, no diagnostics
//	nested/arity.dl     parses, DL03 error
//	nested/broken.dl    parse error
//	.hidden/skip.dl     ignored by discovery
//	notes.txt           ignored by discovery
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	files := map[string]string{
		"graph.dl":         GraphSource,
		"lookup.dl":        LookupSource,
		"nested/arity.dl":  ArityMismatchSource,
		"nested/broken.dl": BrokenSource,
		".hidden/skip.dl":  BrokenSource,
		"notes.txt":        "not datalog",
	}
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	return tmpDir
}

// UseProject makes dir the working directory and loads the CLI
// configuration from it, as the root command would. A non-empty outputMode
// is applied through LEAPDL_OUTPUT.
func UseProject(t *testing.T, dir, outputMode string) *config.Config {
	t.Helper()

	t.Chdir(dir)
	if outputMode != "" {
		t.Setenv(config.EnvPrefix+"OUTPUT", outputMode)
	}

	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererText creates a new test renderer in text mode without a terminal.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
