// Package token defines the lexical tokens of the LeapDL rule language.
package token

import (
	"fmt"
	"unicode"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow the grammar's terminal names
const (
	// Special tokens
	EOF TokenType = iota

	// Numbers
	SIGNED_REAL    // -3.4, +0.5
	SIGNED_INTEGER // -23, +7
	REAL           // 3.4
	INTEGER        // 23

	// Names and literals
	ACCESS_PATTERN // {iio}
	VARIABLE       // ?x
	QUOTED_STRING  // 'ab' or "ab"
	STRING         // bare identifier: relation names

	// Punctuation
	LPAREN  // (
	RPAREN  // )
	PERIOD  // .
	IMPLIES // :=
	COMMA   // ,
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF: "EOF",

	SIGNED_REAL:    "SIGNEDREALNUMBER",
	SIGNED_INTEGER: "SIGNEDINTEGER",
	REAL:           "REALNUMBER",
	INTEGER:        "INTEGER",

	ACCESS_PATTERN: "ACCESSPATTERN",
	VARIABLE:       "VARIABLE",
	QUOTED_STRING:  "QUOTEDSTRING",
	STRING:         "STRING",

	LPAREN:  "(",
	RPAREN:  ")",
	PERIOD:  ".",
	IMPLIES: ":=",
	COMMA:   ",",
}

// IsNumber returns true for the four numeric literal types.
func IsNumber(t TokenType) bool {
	return t >= SIGNED_REAL && t <= INTEGER
}

// IsConstant returns true if the token can stand for a constant term.
func IsConstant(t TokenType) bool {
	return IsNumber(t) || t == QUOTED_STRING
}

// IsPunct returns true if the token is punctuation.
func IsPunct(t TokenType) bool {
	return t >= LPAREN && t <= COMMA
}

// VariableMarker prefixes variable names and query statements.
const VariableMarker = '?'

// IsIdentRune reports whether r may appear in a relation or variable name.
// The class is Unicode-aware: any letter, any decimal digit, or underscore.
func IsIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsIdent reports whether s is a non-empty run of identifier runes.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsIdentRune(r) {
			return false
		}
	}
	return true
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string // exact source text
	Pos     Position

	// Value is the decoded payload: int64 for integers, float64 for reals,
	// the unquoted contents for strings, the bare name for variables and
	// the flag letters for access patterns.
	Value any
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Literal)
}
