package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/internal/cli/output"
	"github.com/leapstack-labs/leapdl/internal/engine"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-check sources whenever they change",
		Long: `Check every Datalog source under a directory, then check again each
time a source file is written, created, removed or renamed. Without an
argument the configured source directory is watched.

Press Ctrl+C to stop.`,
		Example: `  # Watch the source directory
  leapdl watch

  # Watch another directory with a longer debounce
  leapdl watch ./programs --debounce 500ms`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runWatch(cmd, dir, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", engine.DefaultDebounce, "Wait this long after the last change before re-checking (overrides watch.debounce)")

	return cmd
}

func runWatch(cmd *cobra.Command, dir string, opts *WatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	eng := cmdCtx.Engine
	r := cmdCtx.Renderer

	if dir == "" {
		dir = eng.SourceDir()
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", dir))

	debounce := cmdCtx.Cfg.Watch.Debounce
	if cmd.Flags().Changed("debounce") {
		debounce = opts.Debounce
	}

	return eng.Watch(ctx, dir, engine.WatchOptions{
		Debounce: debounce,
		OnCheck: func(result *engine.CheckResult) {
			renderWatchResult(r, result)
		},
		OnError: func(err error) {
			r.Error(err.Error())
		},
	})
}

// renderWatchResult prints a compact report of one check run.
func renderWatchResult(r *output.Renderer, result *engine.CheckResult) {
	r.Println("")
	r.Muted(time.Now().Format("15:04:05"))
	for _, f := range result.Files {
		if f.OK() && len(f.Diagnostics) == 0 {
			continue
		}
		if f.Err != nil {
			r.StatusLine(displayPath(f.Path), "error", f.Err.Error())
			continue
		}
		for _, d := range f.Diagnostics {
			status := "warning"
			if d.Severity == lint.SeverityError {
				status = "error"
			}
			r.StatusLine(displayPath(f.Path)+":"+d.Pos.String(), status, d.RuleID+": "+d.Message)
		}
	}
	if result.HasErrors() {
		r.Error(result.Summary())
		return
	}
	r.Success(result.Summary())
}
