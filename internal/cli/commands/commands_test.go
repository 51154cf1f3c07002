package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// execute runs cmd with args and returns its standard output, error output
// and error. Usage and error printing are silenced as on the root command.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewCheckCommand(), "check [paths...]", []string{"format", "no-lint"}},
		{NewTokensCommand(), "tokens <file>", []string{"format"}},
		{NewFmtCommand(), "fmt [paths...]", []string{"write", "check"}},
		{NewReplCommand(), "repl", []string{"history"}},
		{NewWatchCommand(), "watch [dir]", []string{"debounce"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"group", "verbose", "format"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "0 statements", countLabel(0, "statement"))
	assert.Equal(t, "1 statement", countLabel(1, "statement"))
	assert.Equal(t, "5 statements", countLabel(5, "statement"))
}

func TestTruncateOneLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"multiline", "hello\nworld", 20, "hello world"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncateOneLine(tc.input, tc.maxLen))
		})
	}
}
