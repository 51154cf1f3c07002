package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Format string // Output format override
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Long: `Tokenize a Datalog source file and print every token with its
position and decoded value. Use "-" to read from standard input.`,
		Example: `  # Show tokens as a table
  leapdl tokens graph.dl

  # Tokenize standard input as JSON
  echo 'edge(1, 2).' | leapdl tokens - --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// TokenReport is the structured form of one token.
type TokenReport struct {
	Type    string         `json:"type" yaml:"type"`
	Literal string         `json:"literal" yaml:"literal"`
	Value   any            `json:"value,omitempty" yaml:"value,omitempty"`
	Pos     token.Position `json:"pos" yaml:"pos"`
}

func runTokens(cmd *cobra.Command, path string, opts *TokensOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.WithFormat(cmd, opts.Format)

	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}

	toks, err := cmdCtx.Engine.Tokenize(src)
	if err != nil {
		return err
	}

	reports := make([]TokenReport, len(toks))
	for i, tok := range toks {
		reports[i] = TokenReport{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Value:   tok.Value,
			Pos:     tok.Pos,
		}
	}
	if ok, err := r.Structured(reports); ok {
		return err
	}

	rows := make([][]string, len(reports))
	for i, tok := range reports {
		value := ""
		if tok.Value != nil {
			value = fmt.Sprint(tok.Value)
		}
		rows[i] = []string{
			tok.Type,
			tok.Literal,
			fmt.Sprint(tok.Pos.Line),
			fmt.Sprint(tok.Pos.Column),
			value,
		}
	}
	r.Table([]string{"Type", "Literal", "Line", "Column", "Value"}, rows)
	return nil
}

// readSource reads path, or standard input when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(path) //nolint:gosec // G304: path is given on the command line
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}
