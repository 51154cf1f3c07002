package datalog

import (
	"fmt"
	"strings"
)

// Tuple is a fixed-arity ordered sequence of terms.
type Tuple struct {
	terms []Term
}

// NewTuple builds a tuple from the given terms. Nil elements are rejected.
func NewTuple(terms ...Term) (Tuple, error) {
	out := make([]Term, len(terms))
	for i, t := range terms {
		switch t.(type) {
		case Constant, Variable:
			out[i] = t
		default:
			return Tuple{}, invalid(ErrInvalidTerm, fmt.Sprintf("element %d is %T", i, t))
		}
	}
	return Tuple{terms: out}, nil
}

// Arity returns the number of terms.
func (t Tuple) Arity() int { return len(t.terms) }

// Term returns the term at position i.
func (t Tuple) Term(i int) Term { return t.terms[i] }

// Terms returns a copy of the terms.
func (t Tuple) Terms() []Term {
	out := make([]Term, len(t.terms))
	copy(out, t.terms)
	return out
}

// Variables returns the variable names in first-seen order, each once.
func (t Tuple) Variables() []string {
	var names []string
	seen := make(map[string]bool)
	for _, term := range t.terms {
		v, ok := term.(Variable)
		if !ok || seen[v.name] {
			continue
		}
		seen[v.name] = true
		names = append(names, v.name)
	}
	return names
}

// IsGround returns true if the tuple holds no variables.
func (t Tuple) IsGround() bool {
	for _, term := range t.terms {
		if _, ok := term.(Variable); ok {
			return false
		}
	}
	return true
}

// String returns the tuple in source syntax.
func (t Tuple) String() string {
	parts := make([]string, len(t.terms))
	for i, term := range t.terms {
		parts[i] = term.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
