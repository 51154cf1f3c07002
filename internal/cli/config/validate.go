package config

import (
	"fmt"

	"github.com/leapstack-labs/leapdl/internal/cli/output"
	sharedcfg "github.com/leapstack-labs/leapdl/internal/config"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	if len(sharedcfg.NormalizeExtensions(c.Extensions)) == 0 {
		return fmt.Errorf("extensions must list at least one file extension")
	}
	if err := sharedcfg.ValidateJobs(c.Jobs); err != nil {
		return err
	}
	if !output.IsValidMode(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, output.Modes())
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if _, err := c.Lint.Build(); err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	return nil
}
