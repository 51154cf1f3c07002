package engine

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/format"
	"github.com/leapstack-labs/leapdl/pkg/parser"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// Tokenize tokenizes source text after normalization.
func (e *Engine) Tokenize(src string) ([]token.Token, error) {
	return parser.Tokenize(e.prepare(src))
}

// ParseSource parses source text after normalization.
func (e *Engine) ParseSource(src string) (*datalog.Program, error) {
	return parser.Parse(e.prepare(src))
}

// ParseFile reads and parses a source file.
func (e *Engine) ParseFile(path string) (*datalog.Program, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery or the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return e.ParseSource(string(content))
}

// FormatSource parses and formats source text in one step.
func (e *Engine) FormatSource(src string) (string, error) {
	prog, err := e.ParseSource(src)
	if err != nil {
		return "", err
	}
	return format.Program(prog), nil
}
