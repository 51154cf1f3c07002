package datalog

import "github.com/leapstack-labs/leapdl/pkg/token"

// Statement is one top-level item of a program: a fact (Atom), a *Rule or
// a Query.
type Statement interface {
	statement()
	Pos() token.Position
	String() string
}

// Program accumulates facts, rules and queries. No cross-validation is done
// between them.
type Program struct {
	facts      []Atom
	rules      []*Rule
	queries    []Query
	statements []Statement
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{}
}

// AddFact appends a fact.
func (p *Program) AddFact(fact Atom) {
	p.facts = append(p.facts, fact)
	p.statements = append(p.statements, fact)
}

// AddRule appends a rule.
func (p *Program) AddRule(rule *Rule) {
	p.rules = append(p.rules, rule)
	p.statements = append(p.statements, rule)
}

// AddQuery appends a query.
func (p *Program) AddQuery(query Query) {
	p.queries = append(p.queries, query)
	p.statements = append(p.statements, query)
}

// Facts returns a copy of the facts.
func (p *Program) Facts() []Atom {
	return append([]Atom(nil), p.facts...)
}

// Rules returns a copy of the rules.
func (p *Program) Rules() []*Rule {
	return append([]*Rule(nil), p.rules...)
}

// Queries returns a copy of the queries.
func (p *Program) Queries() []Query {
	return append([]Query(nil), p.queries...)
}

// Statements returns every statement in the order it was added.
func (p *Program) Statements() []Statement {
	return append([]Statement(nil), p.statements...)
}

// Len returns the number of statements.
func (p *Program) Len() int { return len(p.statements) }
