package datalog

import (
	"fmt"

	"github.com/leapstack-labs/leapdl/pkg/token"
)

// Atom is a relation name applied to a tuple, optionally annotated with an
// access pattern.
type Atom struct {
	relation string
	tuple    Tuple
	pattern  *AccessPattern
	pos      token.Position
}

// NewAtom returns an atom without an access pattern.
func NewAtom(relation string, tuple Tuple) (Atom, error) {
	if err := checkRelation(relation); err != nil {
		return Atom{}, err
	}
	return Atom{relation: relation, tuple: tuple}, nil
}

// NewAtomWithPattern returns an atom annotated with the given access
// pattern, which must have one flag per tuple position.
func NewAtomWithPattern(relation string, tuple Tuple, pattern string) (Atom, error) {
	a, err := NewAtom(relation, tuple)
	if err != nil {
		return Atom{}, err
	}
	ap, err := NewAccessPattern(pattern, tuple.Arity())
	if err != nil {
		return Atom{}, err
	}
	a.pattern = &ap
	return a, nil
}

func checkRelation(name string) error {
	if !token.IsIdent(name) {
		return invalid(ErrInvalidName, fmt.Sprintf("relation name %q", name))
	}
	return nil
}

// At returns a copy of the atom recording its source position.
func (a Atom) At(pos token.Position) Atom {
	a.pos = pos
	return a
}

// Relation returns the relation name.
func (a Atom) Relation() string { return a.relation }

// Tuple returns the atom's tuple.
func (a Atom) Tuple() Tuple { return a.tuple }

// AccessPattern returns the access pattern, if any.
func (a Atom) AccessPattern() (AccessPattern, bool) {
	if a.pattern == nil {
		return AccessPattern{}, false
	}
	return *a.pattern, true
}

// HasAccessPattern returns true if the atom is annotated.
func (a Atom) HasAccessPattern() bool { return a.pattern != nil }

// Pos returns the source position, or the zero Position if the atom was
// built directly.
func (a Atom) Pos() token.Position { return a.pos }

// IsFact returns true when no variable occurs anywhere in the tuple.
func (a Atom) IsFact() bool { return a.tuple.IsGround() }

// String returns the atom in source syntax.
func (a Atom) String() string {
	s := a.relation
	if a.pattern != nil {
		s += a.pattern.String()
	}
	return s + a.tuple.String()
}

func (Atom) statement() {}
