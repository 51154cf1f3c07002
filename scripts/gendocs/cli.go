package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leapdl/internal/cli"
)

// seeAlso links commands to the reference pages they depend on.
var seeAlso = map[string][]string{
	"check": {"[Lint rules](/linting/rules)", "[Configuration](/concepts/configuration)"},
	"rules": {"[Lint rules](/linting/rules)"},
	"watch": {"[Configuration](/concepts/configuration)"},
}

// generateCLIDocs generates CLI documentation from the cobra command tree.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndexDoc(rootCmd), 0600); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range visibleCommands(rootCmd) {
		if err := os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), commandDoc(cmd), 0600); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

// visibleCommands returns the documented subcommands of cmd.
func visibleCommands(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "__complete" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// cliIndexDoc renders the CLI overview page.
func cliIndexDoc(rootCmd *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for LeapDL")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapdl/cmd/leapdl@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", rootCmd.Name()+" <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range visibleCommands(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cmd.Short})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	var envRows [][]string
	for _, f := range getConfigSchema() {
		if f.Env != "" {
			envRows = append(envRows, []string{InlineCode(f.Env), f.Description})
		}
	}
	w.Table([]string{"Variable", "Description"}, envRows)
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over `leapdl.yaml`.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including parse failures and error-level diagnostics (details on stderr)"},
	})

	return w.Bytes()
}

// commandDoc renders the page of a single command.
func commandDoc(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, alias := range cmd.Aliases {
			aliases[i] = InlineCode(alias)
		}
		w.BulletList(aliases)
	}

	if len(cmd.ValidArgs) > 0 {
		w.Header(2, "Arguments")
		args := make([]string, len(cmd.ValidArgs))
		for i, arg := range cmd.ValidArgs {
			args[i] = InlineCode(arg)
		}
		w.BulletList(args)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	if links := seeAlso[cmd.Name()]; len(links) > 0 {
		w.Header(2, "See Also")
		w.BulletList(links)
	}

	return w.Bytes()
}

// writeFlagsTable writes a table of the visible flags in fs.
func writeFlagsTable(w *MarkdownWriter, fs *pflag.FlagSet) {
	var rows [][]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = InlineCode("-" + f.Shorthand)
		}
		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			flagDefault(f),
			f.Usage,
		})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// flagDefault renders a flag's default value; zero values are left blank.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "[]", "0", "false":
		return ""
	}
	return InlineCode(f.DefValue)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
