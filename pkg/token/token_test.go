package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "STRING", STRING.String())
	assert.Equal(t, ":=", IMPLIES.String())
	assert.Equal(t, "SIGNEDREALNUMBER", SIGNED_REAL.String())
	assert.Equal(t, "TOKEN(999)", TokenType(999).String())
}

func TestClassifiers(t *testing.T) {
	for _, tt := range []TokenType{SIGNED_REAL, SIGNED_INTEGER, REAL, INTEGER} {
		assert.True(t, IsNumber(tt), tt.String())
		assert.True(t, IsConstant(tt), tt.String())
	}
	assert.True(t, IsConstant(QUOTED_STRING))
	assert.False(t, IsConstant(VARIABLE))
	assert.False(t, IsNumber(STRING))
	assert.True(t, IsPunct(COMMA))
	assert.False(t, IsPunct(ACCESS_PATTERN))
}

func TestIsIdent(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc", true},
		{"a_b1", true},
		{"_", true},
		{"aéb", true},
		{"関係", true},
		{"", false},
		{"a-b", false},
		{"?x", false},
		{"a b", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsIdent(tt.in), "IsIdent(%q)", tt.in)
	}
}

func TestPosition(t *testing.T) {
	p := Position{Line: 2, Column: 5, Offset: 12}
	assert.True(t, p.IsValid())
	assert.Equal(t, "2:5", p.String())
	assert.Equal(t, "-", Position{}.String())

	assert.True(t, Position{Line: 1, Column: 9}.Before(p))
	assert.True(t, Position{Line: 2, Column: 1}.Before(p))
	assert.False(t, p.Before(p))

	s := Span{Start: Position{Offset: 3}, End: Position{Offset: 6}}
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(6))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "EOF", Token{Type: EOF}.String())
	assert.Equal(t, `VARIABLE "?x"`, Token{Type: VARIABLE, Literal: "?x"}.String())
}
