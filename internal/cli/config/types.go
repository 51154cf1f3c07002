// Package config provides configuration management for the LeapDL CLI.
//
// This package extends the shared configuration types from internal/config
// with CLI-specific fields. Values are layered with koanf: defaults, then
// the config file, then LEAPDL_ environment variables, then flags.
package config

import (
	"time"

	sharedcfg "github.com/leapstack-labs/leapdl/internal/config"
)

// LintConfig is an alias for the shared lint configuration.
// This allows CLI code to use config.LintConfig without importing internal/config.
type LintConfig = sharedcfg.LintConfig

// Config holds all CLI configuration options.
type Config struct {
	SourceDir    string      `koanf:"source_dir"`
	Extensions   []string    `koanf:"extensions"`
	Jobs         int         `koanf:"jobs"`
	Normalize    bool        `koanf:"normalize"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Lint         *LintConfig `koanf:"lint"`
	Watch        WatchConfig `koanf:"watch"`

	// ProjectRoot is the directory of the config file, or the working
	// directory when no config file was found.
	ProjectRoot string `koanf:"-"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultSourceDir = sharedcfg.DefaultSourceDir
	DefaultJobs      = sharedcfg.DefaultJobs
	DefaultOutput    = sharedcfg.DefaultOutput
	DefaultDebounce  = sharedcfg.DefaultDebounce
)

// configFileNames are searched, in order, when no config file is given.
var configFileNames = []string{"leapdl.yaml", "leapdl.yml"}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		SourceDir:    DefaultSourceDir,
		Extensions:   sharedcfg.DefaultExtensions(),
		Jobs:         DefaultJobs,
		OutputFormat: DefaultOutput,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
