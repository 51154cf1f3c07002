package datalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// Term is a tuple element: either a Constant or a Variable.
// The set is closed; no other type implements Term.
type Term interface {
	isTerm()
	String() string
}

// Kind is the type tag of a Constant.
type Kind int

// Constant kinds.
const (
	KindInteger Kind = iota
	KindReal
	KindString
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Constant is an immutable typed literal.
type Constant struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntConstant returns an integer constant.
func IntConstant(v int64) Constant {
	return Constant{kind: KindInteger, i: v}
}

// RealConstant returns a real constant. NaN and infinities have no source
// form and are rejected.
func RealConstant(v float64) (Constant, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Constant{}, invalid(ErrInvalidConstant, fmt.Sprintf("real value %v is not finite", v))
	}
	return Constant{kind: KindReal, f: v}, nil
}

// StringConstant returns a string constant. The value must be expressible
// as a quoted literal: no newline, and not both quote characters.
func StringConstant(v string) (Constant, error) {
	if strings.ContainsAny(v, "\n\r") {
		return Constant{}, invalid(ErrInvalidConstant, "string value spans lines")
	}
	if strings.ContainsRune(v, '\'') && strings.ContainsRune(v, '"') {
		return Constant{}, invalid(ErrInvalidConstant, "string value contains both quote characters")
	}
	return Constant{kind: KindString, s: v}, nil
}

func (Constant) isTerm() {}

// Kind returns the constant's type tag.
func (c Constant) Kind() Kind { return c.kind }

// Value returns the payload as int64, float64 or string.
func (c Constant) Value() any {
	switch c.kind {
	case KindInteger:
		return c.i
	case KindReal:
		return c.f
	default:
		return c.s
	}
}

// String returns the constant in source syntax.
func (c Constant) String() string {
	switch c.kind {
	case KindInteger:
		return strconv.FormatInt(c.i, 10)
	case KindReal:
		s := strconv.FormatFloat(c.f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		if strings.ContainsRune(c.s, '\'') {
			return `"` + c.s + `"`
		}
		return "'" + c.s + "'"
	}
}

// Variable is a named placeholder unified across the atoms of a rule.
type Variable struct {
	name string
}

// NewVariable returns a variable. The name is given without the '?' marker
// and must be a non-empty identifier.
func NewVariable(name string) (Variable, error) {
	if !token.IsIdent(name) {
		return Variable{}, invalid(ErrInvalidName, fmt.Sprintf("variable name %q", name))
	}
	return Variable{name: name}, nil
}

func (Variable) isTerm() {}

// Name returns the variable name without the marker.
func (v Variable) Name() string { return v.name }

// String returns the variable in source syntax.
func (v Variable) String() string {
	return string(token.VariableMarker) + v.name
}
