package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

// FileResult is the outcome of checking one source file.
type FileResult struct {
	Path        string
	Program     *datalog.Program // nil when Err is set
	Err         error            // read, lex, parse or validation failure
	Diagnostics []lint.Diagnostic
}

// OK reports whether the file parsed and has no error-level diagnostics.
func (r *FileResult) OK() bool {
	return r.Err == nil && !lint.HasErrors(r.Diagnostics)
}

// CheckResult contains the per-file results of a check run, in discovery order.
type CheckResult struct {
	Files    []*FileResult
	Duration time.Duration
}

// HasErrors returns true if any file failed to parse or has error diagnostics.
func (r *CheckResult) HasErrors() bool {
	for _, f := range r.Files {
		if !f.OK() {
			return true
		}
	}
	return false
}

// Counts returns the number of files, failed files and statements.
func (r *CheckResult) Counts() (files, failed, statements int) {
	for _, f := range r.Files {
		if !f.OK() {
			failed++
		}
		if f.Program != nil {
			statements += f.Program.Len()
		}
	}
	return len(r.Files), failed, statements
}

// Summary returns a human-readable summary.
func (r *CheckResult) Summary() string {
	files, failed, statements := r.Counts()
	return fmt.Sprintf("%d files (%d failed), %d statements | Duration: %s",
		files, failed, statements, r.Duration.Round(time.Millisecond))
}

// Check discovers, parses and lints the given paths. Files are parsed
// concurrently, at most Jobs at a time, each with its own parser. A file
// that fails to parse is recorded in its FileResult; the returned error is
// reserved for discovery failures and cancellation.
func (e *Engine) Check(ctx context.Context, paths ...string) (*CheckResult, error) {
	start := time.Now()

	files, err := e.Discover(paths...)
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &CheckResult{Files: results, Duration: time.Since(start)}
	e.logger.Debug("check finished", "summary", result.Summary())
	return result, nil
}

func (e *Engine) checkFile(path string) *FileResult {
	res := &FileResult{Path: path}

	prog, err := e.ParseFile(path)
	if err != nil {
		e.logger.Debug("parse error", "path", path, "error", err.Error())
		res.Err = err
		return res
	}

	res.Program = prog
	res.Diagnostics = e.Lint(prog)
	e.logger.Debug("parsed file", "path", path,
		"statements", prog.Len(), "diagnostics", len(res.Diagnostics))
	return res
}
