package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/internal/cli/config"
	"github.com/leapstack-labs/leapdl/internal/cli/output"
	"github.com/leapstack-labs/leapdl/internal/engine"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Engine = eng
	return cmdCtx, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only render static information.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// WithFormat replaces the renderer when a command-level format flag is set.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) *output.Renderer {
	if format != "" {
		c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	return c.Renderer
}

// getConfig returns the current configuration, or the defaults when the
// command runs without the root command's config loading.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	lintCfg, err := cfg.Lint.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid lint configuration: %w", err)
	}

	return engine.New(engine.Config{
		SourceDir:  cfg.SourceDir,
		Extensions: cfg.Extensions,
		Jobs:       cfg.Jobs,
		Normalize:  cfg.Normalize,
		Lint:       lintCfg,
		Logger:     logger,
	})
}
