package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos      token.Position
	Found    token.TokenType
	Literal  string
	Expected []token.TokenType
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.message())
}

func (e *ParseError) message() string {
	var found string
	if e.Found == token.EOF {
		found = "unexpected end of input"
	} else {
		found = fmt.Sprintf("unexpected %s %q", e.Found, e.Literal)
	}
	if len(e.Expected) == 0 {
		return found
	}
	return found + ", expected " + joinAlternatives(e.Expected)
}

// joinAlternatives renders types as `"(" or STRING`, `A, B or C`.
func joinAlternatives(types []token.TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		if token.IsPunct(t) {
			names[i] = fmt.Sprintf("%q", t.String())
		} else {
			names[i] = t.String()
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Char    rune   // the offending character
	Message string // set when the character started a token that could not be completed
}

func (e *LexError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("unrecognized character %q", e.Char)
	}
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, msg)
}

// SemanticError is a data-model validation failure detected while parsing.
// Err is the *datalog.ValidationError; use errors.Is with the datalog
// sentinels to classify it.
type SemanticError struct {
	Pos token.Position
	Err error
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("invalid program at line %d, column %d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *SemanticError) Unwrap() error {
	return e.Err
}
