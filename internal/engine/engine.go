// Package engine provides the LeapDL source pipeline.
// It discovers source files, parses them concurrently and lints the result.
package engine

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/leapdl/internal/config"
	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
	_ "github.com/leapstack-labs/leapdl/pkg/lint/rules" // register built-in rules
)

// Engine parses and checks LeapDL sources.
type Engine struct {
	logger     *slog.Logger
	sourceDir  string
	extensions []string
	jobs       int
	normalize  bool
	analyzer   *lint.Analyzer
}

// Config holds engine configuration.
type Config struct {
	// SourceDir is searched when Check is called without paths
	SourceDir string
	// Extensions lists the file extensions discovered in directories
	Extensions []string
	// Jobs limits concurrent parses; zero means one per CPU
	Jobs int
	// Normalize applies Unicode NFC normalization before tokenizing
	Normalize bool
	// Lint configures the analyzer (optional, all rules enabled if nil)
	Lint *lint.Config
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := config.ValidateJobs(cfg.Jobs); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	jobs := cfg.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	sourceDir := cfg.SourceDir
	if sourceDir == "" {
		sourceDir = config.DefaultSourceDir
	}

	extensions := config.NormalizeExtensions(cfg.Extensions)
	if len(extensions) == 0 {
		extensions = config.DefaultExtensions()
	}

	logger.Debug("initializing engine",
		"source_dir", sourceDir, "extensions", extensions, "jobs", jobs, "normalize", cfg.Normalize)

	return &Engine{
		logger:     logger,
		sourceDir:  sourceDir,
		extensions: extensions,
		jobs:       jobs,
		normalize:  cfg.Normalize,
		analyzer:   lint.NewAnalyzer(cfg.Lint),
	}, nil
}

// SourceDir returns the directory searched by default.
func (e *Engine) SourceDir() string {
	return e.sourceDir
}

// Extensions returns the source file extensions.
func (e *Engine) Extensions() []string {
	out := make([]string, len(e.extensions))
	copy(out, e.extensions)
	return out
}

// Jobs returns the concurrent parse limit.
func (e *Engine) Jobs() int {
	return e.jobs
}

// Lint runs the analyzer over a parsed program.
func (e *Engine) Lint(prog *datalog.Program) []lint.Diagnostic {
	return e.analyzer.Analyze(prog)
}

// prepare applies source normalization.
func (e *Engine) prepare(src string) string {
	if e.normalize {
		return norm.NFC.String(src)
	}
	return src
}
