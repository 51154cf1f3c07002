package rules

import (
	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// definedRelations returns the relations that appear as a fact or a rule head.
func definedRelations(prog *datalog.Program) map[string]bool {
	defined := make(map[string]bool)
	for _, fact := range prog.Facts() {
		defined[fact.Relation()] = true
	}
	for _, rule := range prog.Rules() {
		defined[rule.Head().Relation()] = true
	}
	return defined
}

// relationUse is one occurrence of a relation in a program.
type relationUse struct {
	relation string
	arity    int
	pos      token.Position
}

// relationUses lists every relation occurrence in statement order. Within a
// rule the head comes before the body atoms.
func relationUses(prog *datalog.Program) []relationUse {
	var uses []relationUse
	addAtom := func(a datalog.Atom) {
		uses = append(uses, relationUse{relation: a.Relation(), arity: a.Tuple().Arity(), pos: a.Pos()})
	}
	for _, stmt := range prog.Statements() {
		switch s := stmt.(type) {
		case datalog.Atom:
			addAtom(s)
		case *datalog.Rule:
			addAtom(s.Head())
			for _, a := range s.Body() {
				addAtom(a)
			}
		case datalog.Query:
			uses = append(uses, relationUse{relation: s.Relation(), arity: s.Tuple().Arity(), pos: s.Pos()})
		}
	}
	return uses
}
