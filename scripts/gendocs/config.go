package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapdl/internal/cli/output"
	"github.com/leapstack-labs/leapdl/internal/config"
)

// generateConfigDocs generates the leapdl.yaml reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), configurationDoc(), 0600); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Env         string
	Flag        string
	Description string
	Category    string // "project" or "lint"
}

// getConfigSchema returns the configuration schema definition.
// Keep in sync with internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "source_dir", Type: "string", Default: config.DefaultSourceDir, Env: "LEAPDL_SOURCE_DIR", Flag: "--source-dir",
			Description: "Directory searched for Datalog sources, relative to the config file", Category: "project"},
		{Name: "extensions", Type: "[]string", Default: strings.Join(config.DefaultExtensions(), ","), Env: "LEAPDL_EXTENSIONS", Flag: "--extensions",
			Description: "File extensions treated as Datalog sources", Category: "project"},
		{Name: "jobs", Type: "int", Default: fmt.Sprint(config.DefaultJobs), Env: "LEAPDL_JOBS", Flag: "--jobs",
			Description: "Files parsed in parallel (0 = one per CPU)", Category: "project"},
		{Name: "normalize", Type: "bool", Default: "false", Env: "LEAPDL_NORMALIZE", Flag: "--normalize",
			Description: "Apply Unicode NFC normalization before lexing", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Env: "LEAPDL_VERBOSE", Flag: "--verbose",
			Description: "Log debug messages to stderr", Category: "project"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Env: "LEAPDL_OUTPUT", Flag: "--output",
			Description: "Output format: " + strings.Join(output.Modes(), ", "), Category: "project"},
		{Name: "watch.debounce", Type: "duration", Default: config.DefaultDebounce.String(), Env: "LEAPDL_WATCH_DEBOUNCE", Flag: "watch --debounce",
			Description: "Delay between the last file change and the re-check in watch mode", Category: "project"},
		{Name: "lint.disabled", Type: "[]string", Env: "LEAPDL_LINT_DISABLED",
			Description: "Rule IDs that are not run", Category: "lint"},
		{Name: "lint.severity", Type: "map[string]string",
			Description: "Severity override per rule ID: error, warning, info, hint", Category: "lint"},
	}
}

func configurationDoc() []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "LeapDL configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("LeapDL reads `leapdl.yaml` (or `leapdl.yml`), searched upward from the working directory. " +
		"Values are layered: built-in defaults, then the config file, then `LEAPDL_*` environment variables, then command-line flags.")

	fields := getConfigSchema()

	w.Header(2, "Project Settings")
	w.Table([]string{"Field", "Type", "Default", "Environment", "Flag", "Description"}, configRows(fields, "project"))

	w.Header(2, "Lint Settings")
	w.Paragraph("Lint rules are configured under the `lint` key. Run `leapdl rules` for the list of rule IDs.")
	w.Table([]string{"Field", "Type", "Default", "Environment", "Flag", "Description"}, configRows(fields, "lint"))

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# leapdl.yaml
source_dir: programs
extensions: [.dl, .datalog]
jobs: 8
normalize: true
output: text

watch:
  debounce: 250ms

lint:
  disabled: [DL02]
  severity:
    DL04: warning`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Use `${VAR_NAME}` syntax to reference environment variables in `source_dir`:")
	w.CodeBlock("yaml", `source_dir: ${DATALOG_HOME}/programs`)

	return w.Bytes()
}

func configRows(fields []ConfigField, category string) [][]string {
	var rows [][]string
	for _, f := range fields {
		if f.Category != category {
			continue
		}
		rows = append(rows, []string{
			InlineCode(f.Name),
			f.Type,
			orDash(f.Default, InlineCode),
			orDash(f.Env, InlineCode),
			orDash(f.Flag, InlineCode),
			f.Description,
		})
	}
	return rows
}

func orDash(s string, wrap func(string) string) string {
	if s == "" {
		return "-"
	}
	return wrap(s)
}
