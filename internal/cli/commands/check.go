package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/internal/cli/output"
	"github.com/leapstack-labs/leapdl/internal/engine"
	"github.com/leapstack-labs/leapdl/pkg/lint"
	"github.com/leapstack-labs/leapdl/pkg/parser"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format string // Output format override
	NoLint bool   // Report parse results only
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse and lint Datalog sources",
		Long: `Parse every Datalog source file and run the lint rules on it.

Directories are searched recursively for files with a configured extension
(.dl by default); files named explicitly are always checked. Without
arguments the configured source directory is used.

The command fails if any file does not parse or has an error-level
diagnostic.`,
		Example: `  # Check the source directory
  leapdl check

  # Check a single file
  leapdl check graph.dl

  # Output as JSON
  leapdl check --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().BoolVar(&opts.NoLint, "no-lint", false, "Skip lint rules")

	return cmd
}

func runCheck(cmd *cobra.Command, paths []string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.WithFormat(cmd, opts.Format)

	result, err := cmdCtx.Engine.Check(cmd.Context(), paths...)
	if err != nil {
		return err
	}
	if opts.NoLint {
		for _, f := range result.Files {
			f.Diagnostics = nil
		}
	}

	if err := renderCheckResult(r, result); err != nil {
		return err
	}

	if result.HasErrors() {
		files, failed, _ := result.Counts()
		return fmt.Errorf("check failed: %d of %d files have errors", failed, files)
	}
	return nil
}

// CheckFileReport is the structured form of one checked file.
type CheckFileReport struct {
	Path        string            `json:"path" yaml:"path"`
	OK          bool              `json:"ok" yaml:"ok"`
	Statements  int               `json:"statements" yaml:"statements"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorPos    *token.Position   `json:"error_pos,omitempty" yaml:"error_pos,omitempty"`
	Diagnostics []lint.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// CheckReport is the structured output of the check command.
type CheckReport struct {
	Files   []CheckFileReport `json:"files" yaml:"files"`
	Summary struct {
		Files      int `json:"files" yaml:"files"`
		Failed     int `json:"failed" yaml:"failed"`
		Statements int `json:"statements" yaml:"statements"`
	} `json:"summary" yaml:"summary"`
}

func newCheckReport(result *engine.CheckResult) CheckReport {
	var report CheckReport
	report.Files = make([]CheckFileReport, 0, len(result.Files))
	for _, f := range result.Files {
		fr := CheckFileReport{
			Path:        f.Path,
			OK:          f.OK(),
			Diagnostics: f.Diagnostics,
		}
		if f.Program != nil {
			fr.Statements = f.Program.Len()
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
			if pos, ok := errorPos(f.Err); ok {
				fr.ErrorPos = &pos
			}
		}
		report.Files = append(report.Files, fr)
	}
	report.Summary.Files, report.Summary.Failed, report.Summary.Statements = result.Counts()
	return report
}

// errorPos extracts the source position of a parser error.
func errorPos(err error) (token.Position, bool) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Pos, true
	}
	var le *parser.LexError
	if errors.As(err, &le) {
		return le.Pos, true
	}
	var se *parser.SemanticError
	if errors.As(err, &se) {
		return se.Pos, true
	}
	return token.Position{}, false
}

func renderCheckResult(r *output.Renderer, result *engine.CheckResult) error {
	if ok, err := r.Structured(newCheckReport(result)); ok {
		return err
	}

	if len(result.Files) == 0 {
		r.Warning("No source files found")
		return nil
	}

	r.Header(1, "Check")
	for _, f := range result.Files {
		name := displayPath(f.Path)
		switch {
		case f.Err != nil:
			r.StatusLine(name, "error", f.Err.Error())
		case lint.HasErrors(f.Diagnostics):
			r.StatusLine(name, "error", countLabel(f.Program.Len(), "statement"))
		case len(f.Diagnostics) > 0:
			r.StatusLine(name, "warning", countLabel(f.Program.Len(), "statement"))
		default:
			r.StatusLine(name, "success", countLabel(f.Program.Len(), "statement"))
		}
	}

	if rows := diagnosticRows(r, result); len(rows) > 0 {
		r.Println("")
		r.Header(2, "Diagnostics")
		r.Table([]string{"Location", "Severity", "Rule", "Message"}, rows)
	}

	r.Println("")
	r.Muted(result.Summary())
	return nil
}

func diagnosticRows(r *output.Renderer, result *engine.CheckResult) [][]string {
	var rows [][]string
	for _, f := range result.Files {
		for _, d := range f.Diagnostics {
			sev := d.Severity.String()
			if r.EffectiveMode() == output.ModeText {
				sev = severityStyle(r.Styles(), d.Severity).Render(sev)
			}
			rows = append(rows, []string{
				displayPath(f.Path) + ":" + d.Pos.String(),
				sev,
				d.RuleID,
				d.Message,
			})
		}
	}
	return rows
}

func severityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Muted
	}
}

// displayPath shortens path relative to the working directory when possible.
func displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func countLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
