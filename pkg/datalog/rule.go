package datalog

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// Rule derives its head atom from a non-empty, ordered body of atoms.
type Rule struct {
	head Atom
	body []Atom
}

// NewRule validates and returns a rule.
//
// Only the last body atom may carry an access pattern. If it does, every
// input position holding a variable must be bound by some earlier body atom.
func NewRule(head Atom, body []Atom) (*Rule, error) {
	if len(body) == 0 {
		return nil, invalid(ErrEmptyBody, "")
	}

	last := len(body) - 1
	bound := make(map[string]bool)
	for i, atom := range body[:last] {
		if atom.HasAccessPattern() {
			return nil, invalid(ErrMisplacedPattern,
				fmt.Sprintf("body atom %d (%s) is not the rightmost", i+1, atom.relation))
		}
		for _, name := range atom.tuple.Variables() {
			bound[name] = true
		}
	}

	if err := checkExecutable(body[last], bound); err != nil {
		return nil, err
	}

	b := make([]Atom, len(body))
	copy(b, body)
	return &Rule{head: head, body: b}, nil
}

// checkExecutable verifies that every input-flagged variable of atom is in
// bound. Atoms without a pattern always pass.
func checkExecutable(atom Atom, bound map[string]bool) error {
	ap, ok := atom.AccessPattern()
	if !ok {
		return nil
	}
	for i := 0; i < ap.Len(); i++ {
		if ap.Mode(i) != Input {
			continue
		}
		v, isVar := atom.tuple.Term(i).(Variable)
		if isVar && !bound[v.name] {
			return invalid(ErrNotExecutable,
				fmt.Sprintf("input variable %s at position %d of %s is not bound", v, i+1, atom.relation))
		}
	}
	return nil
}

// Head returns the rule head.
func (r *Rule) Head() Atom { return r.head }

// Body returns a copy of the body atoms.
func (r *Rule) Body() []Atom {
	out := make([]Atom, len(r.body))
	copy(out, r.body)
	return out
}

// Pos returns the position of the head atom.
func (r *Rule) Pos() token.Position { return r.head.pos }

// String returns the rule in source syntax, without the final period.
func (r *Rule) String() string {
	parts := make([]string, len(r.body))
	for i, a := range r.body {
		parts[i] = a.String()
	}
	return r.head.String() + " := " + strings.Join(parts, ", ")
}

func (*Rule) statement() {}
