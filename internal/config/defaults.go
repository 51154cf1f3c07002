// Package config provides shared configuration types for LeapDL.
// It is decoupled from CLI concerns so the engine can use it directly.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leapdl/pkg/lint"
)

// Default configuration values.
const (
	DefaultSourceDir = "."
	DefaultJobs      = 4
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown

	// DefaultDebounce is how long watch mode waits for writes to settle.
	DefaultDebounce = 100 * time.Millisecond
)

// DefaultExtensions lists the file extensions treated as LeapDL source.
func DefaultExtensions() []string {
	return []string{".dl"}
}

// LintConfig holds lint settings read from the config file.
type LintConfig struct {
	Disabled []string          `koanf:"disabled"`
	Severity map[string]string `koanf:"severity"` // rule ID -> severity name
}

// Build converts the settings into a lint.Config.
func (c *LintConfig) Build() (*lint.Config, error) {
	if c == nil {
		return lint.NewConfig(), nil
	}
	return lint.ConfigFrom(c.Disabled, c.Severity)
}

// NormalizeExtensions lower-cases extensions and adds a missing leading dot.
// Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// ValidateJobs checks a parse concurrency limit. Zero means one job per CPU.
func ValidateJobs(jobs int) error {
	if jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", jobs)
	}
	return nil
}
