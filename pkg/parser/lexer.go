package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// eof marks the end of input in Lexer.ch. A literal NUL in the input is an
// ordinary (unrecognized) character.
const eof = -1

// Lexer tokenizes LeapDL source text.
//
// At each position the first matching pattern wins, in this order: signed
// real, signed integer, real, integer, access pattern, variable, quoted
// string, bare identifier, punctuation. Whitespace and newlines separate
// tokens and are not emitted.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current character, eof at end of input
	line    int  // line of ch (1-based)
	col     int  // column of ch in runes (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	l.col++
	if l.readPos >= len(l.input) {
		l.ch = eof
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += w
}

// advanceTo consumes characters until pos reaches the byte offset end.
func (l *Lexer) advanceTo(end int) {
	for l.pos < end && l.ch != eof {
		l.readChar()
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token, an EOF token at the end of input, or a
// *LexError if no pattern matches.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()

	if l.ch == eof {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	if tok, ok, err := l.readNumber(pos); ok || err != nil {
		return tok, err
	}

	switch l.ch {
	case '{':
		return l.readAccessPattern(pos)
	case token.VariableMarker:
		if token.IsIdentRune(l.peekChar()) {
			l.readChar() // skip marker
			name := l.readIdentifier()
			return token.Token{Type: token.VARIABLE, Literal: "?" + name, Pos: pos, Value: name}, nil
		}
	case '\'', '"':
		return l.readQuoted(pos)
	case '(':
		return l.punct(token.LPAREN, pos), nil
	case ')':
		return l.punct(token.RPAREN, pos), nil
	case '.':
		return l.punct(token.PERIOD, pos), nil
	case ',':
		return l.punct(token.COMMA, pos), nil
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.IMPLIES, Literal: ":=", Pos: pos}, nil
		}
	default:
		if token.IsIdentRune(l.ch) {
			name := l.readIdentifier()
			return token.Token{Type: token.STRING, Literal: name, Pos: pos, Value: name}, nil
		}
	}

	if l.ch == utf8.RuneError {
		if _, w := utf8.DecodeRuneInString(l.input[l.pos:]); w == 1 {
			return token.Token{}, &LexError{Pos: pos, Char: l.ch,
				Message: fmt.Sprintf("invalid UTF-8 byte %q", l.input[l.pos:l.pos+1])}
		}
	}
	return token.Token{}, &LexError{Pos: pos, Char: l.ch}
}

// punct consumes a single-character punctuation token.
func (l *Lexer) punct(t token.TokenType, pos token.Position) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// skipWhitespace skips whitespace, including newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch != eof && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// digitsEnd returns the offset just past the ASCII digits starting at off.
func (l *Lexer) digitsEnd(off int) int {
	for off < len(l.input) && l.input[off] >= '0' && l.input[off] <= '9' {
		off++
	}
	return off
}

// readNumber matches, in priority order, [+-]d+.d+, [+-]d+, d+.d+ and d+.
// It reports ok=false without consuming anything if none applies.
func (l *Lexer) readNumber(pos token.Position) (token.Token, bool, error) {
	start := l.pos
	signed := l.ch == '+' || l.ch == '-'
	digitsFrom := start
	if signed {
		digitsFrom++
	}

	intEnd := l.digitsEnd(digitsFrom)
	if intEnd == digitsFrom {
		return token.Token{}, false, nil
	}

	end := intEnd
	isReal := false
	if end < len(l.input) && l.input[end] == '.' {
		if fracEnd := l.digitsEnd(end + 1); fracEnd > end+1 {
			end = fracEnd
			isReal = true
		}
	}

	lit := l.input[start:end]
	l.advanceTo(end)

	if isReal {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil || math.IsInf(v, 0) {
			return token.Token{}, false, &LexError{Pos: pos, Char: rune(lit[0]),
				Message: fmt.Sprintf("real literal %s out of range", lit)}
		}
		typ := token.REAL
		if signed {
			typ = token.SIGNED_REAL
		}
		return token.Token{Type: typ, Literal: lit, Pos: pos, Value: v}, true, nil
	}

	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return token.Token{}, false, &LexError{Pos: pos, Char: rune(lit[0]),
			Message: fmt.Sprintf("integer literal %s out of range", lit)}
	}
	typ := token.INTEGER
	if signed {
		typ = token.SIGNED_INTEGER
	}
	return token.Token{Type: typ, Literal: lit, Pos: pos, Value: v}, true, nil
}

// readAccessPattern reads {[io]+}.
func (l *Lexer) readAccessPattern(pos token.Position) (token.Token, error) {
	start := l.pos
	end := start + 1
	for end < len(l.input) && (l.input[end] == 'i' || l.input[end] == 'o') {
		end++
	}
	if end == start+1 || end >= len(l.input) || l.input[end] != '}' {
		return token.Token{}, &LexError{Pos: pos, Char: '{'}
	}
	end++ // closing brace

	lit := l.input[start:end]
	l.advanceTo(end)
	return token.Token{Type: token.ACCESS_PATTERN, Literal: lit, Pos: pos, Value: lit[1 : len(lit)-1]}, nil
}

// readQuoted reads a string delimited by ' or ". The string ends at the
// first occurrence of the opening quote character and may not span lines.
func (l *Lexer) readQuoted(pos token.Position) (token.Token, error) {
	quote := l.ch
	start := l.pos
	rest := l.input[start+1:]
	idx := strings.IndexAny(rest, string(quote)+"\n")
	if idx < 0 || rest[idx] == '\n' {
		return token.Token{}, &LexError{Pos: pos, Char: quote}
	}

	end := start + 1 + idx + 1
	lit := l.input[start:end]
	l.advanceTo(end)
	return token.Token{Type: token.QUOTED_STRING, Literal: lit, Pos: pos, Value: lit[1 : len(lit)-1]}, nil
}

// readIdentifier reads a run of identifier characters.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.ch != eof && token.IsIdentRune(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Tokenize returns all tokens of input, not including the final EOF.
func Tokenize(input string) ([]token.Token, error) {
	tokens, err := tokenizeAll(input)
	if err != nil {
		return nil, err
	}
	return tokens[:len(tokens)-1], nil
}

// tokenizeAll returns all tokens of input, ending with EOF.
func tokenizeAll(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}
