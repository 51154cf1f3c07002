package datalog

import "github.com/leapstack-labs/leapdl/pkg/token"

// Query asks for the tuples of a relation matching a pattern.
type Query struct {
	relation string
	tuple    Tuple
	pos      token.Position
}

// NewQuery returns a query for relation.
func NewQuery(relation string, tuple Tuple) (Query, error) {
	if err := checkRelation(relation); err != nil {
		return Query{}, err
	}
	return Query{relation: relation, tuple: tuple}, nil
}

// At returns a copy of the query recording its source position.
func (q Query) At(pos token.Position) Query {
	q.pos = pos
	return q
}

// Relation returns the queried relation name.
func (q Query) Relation() string { return q.relation }

// Tuple returns the requested pattern.
func (q Query) Tuple() Tuple { return q.tuple }

// Pos returns the source position.
func (q Query) Pos() token.Position { return q.pos }

// String returns the query in source syntax, without the final period.
func (q Query) String() string {
	return string(token.VariableMarker) + q.relation + q.tuple.String()
}

func (Query) statement() {}
