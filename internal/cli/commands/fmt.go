package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool // Rewrite files in place
	Check bool // Fail when a file is not formatted
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Print Datalog sources in canonical form",
		Long: `Parse Datalog sources and print them in canonical form: one statement
per line, single spaces after commas, and long rules broken after ":=".

By default the formatted text is written to standard output. Use "-" to
format standard input.`,
		Example: `  # Print a file in canonical form
  leapdl fmt graph.dl

  # Rewrite every source file in place
  leapdl fmt --write

  # Fail in CI when a file needs formatting
  leapdl fmt --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the source files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files whose formatting differs and fail if there are any")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runFmt(cmd *cobra.Command, paths []string, opts *FmtOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	eng := cmdCtx.Engine
	r := cmdCtx.Renderer

	if len(paths) == 1 && paths[0] == "-" {
		src, err := readSource(cmd, "-")
		if err != nil {
			return err
		}
		formatted, err := eng.FormatSource(src)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), formatted)
		return nil
	}

	files, err := eng.Discover(paths...)
	if err != nil {
		return err
	}

	var unformatted, failed int
	for i, path := range files {
		content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		src := string(content)

		formatted, err := eng.FormatSource(src)
		if err != nil {
			failed++
			r.Error(fmt.Sprintf("%s: %v", displayPath(path), err))
			continue
		}
		changed := formatted != src
		cmdCtx.Logger.Debug("formatted file", "path", path, "changed", changed)

		switch {
		case opts.Check:
			if changed {
				unformatted++
				r.Println(displayPath(path))
			}
		case opts.Write:
			if !changed {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			r.StatusLine(displayPath(path), "success", "formatted")
		default:
			if len(files) > 1 {
				if i > 0 {
					r.Println("")
				}
				r.Muted("== " + displayPath(path) + " ==")
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be parsed", failed, len(files))
	}
	if unformatted > 0 {
		return fmt.Errorf("%d of %d files are not formatted", unformatted, len(files))
	}
	return nil
}
