package datalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Mode is the binding mode of one access-pattern position.
type Mode byte

// Binding modes.
const (
	Input  Mode = 'i'
	Output Mode = 'o'
)

// String returns "input" or "output".
func (m Mode) String() string {
	if m == Input {
		return "input"
	}
	return "output"
}

// AccessPattern annotates each tuple position of an atom with a binding mode.
type AccessPattern struct {
	modes []Mode
}

// NewAccessPattern parses a pattern such as "{io}" or "io" for a tuple of
// the given arity. The length is checked before the characters. Braces are
// stripped only as a pair; a lone brace counts as a flag and is rejected.
func NewAccessPattern(pattern string, arity int) (AccessPattern, error) {
	if len(pattern) >= 2 && strings.HasPrefix(pattern, "{") && strings.HasSuffix(pattern, "}") {
		pattern = pattern[1 : len(pattern)-1]
	}
	if n := utf8.RuneCountInString(pattern); n != arity {
		return AccessPattern{}, invalid(ErrPatternLength,
			fmt.Sprintf("pattern has %d flags, tuple has arity %d", n, arity))
	}
	modes := make([]Mode, 0, arity)
	for _, r := range pattern {
		if r != rune(Input) && r != rune(Output) {
			return AccessPattern{}, invalid(ErrPatternChar, string(r))
		}
		modes = append(modes, Mode(r))
	}
	return AccessPattern{modes: modes}, nil
}

// Len returns the number of positions.
func (p AccessPattern) Len() int { return len(p.modes) }

// Mode returns the mode of position i.
func (p AccessPattern) Mode(i int) Mode { return p.modes[i] }

// Modes returns a copy of the modes.
func (p AccessPattern) Modes() []Mode {
	out := make([]Mode, len(p.modes))
	copy(out, p.modes)
	return out
}

// String returns the pattern in source syntax, e.g. "{io}".
func (p AccessPattern) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, m := range p.modes {
		b.WriteByte(byte(m))
	}
	b.WriteByte('}')
	return b.String()
}
