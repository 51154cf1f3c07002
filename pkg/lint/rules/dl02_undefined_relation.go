package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

func init() {
	lint.Register(UndefinedRelation)
}

// UndefinedRelation warns about relations that are read but never defined.
var UndefinedRelation = lint.RuleDef{
	ID:          "DL02",
	Name:        "relations.undefined",
	Group:       "relations",
	Description: "Relation is used in a rule body or query but no fact or rule defines it.",
	Severity:    lint.SeverityWarning,
	Check:       checkUndefinedRelation,
	Rationale: "A relation with no facts and no rules is always empty. Atoms with an access " +
		"pattern address an external source and are not reported.",
	BadExample:  "q(?x) := missing(?x).",
	GoodExample: "missing(1).\nq(?x) := missing(?x).",
}

func checkUndefinedRelation(prog *datalog.Program) []lint.Diagnostic {
	defined := definedRelations(prog)

	var diagnostics []lint.Diagnostic
	for _, rule := range prog.Rules() {
		for _, atom := range rule.Body() {
			if atom.HasAccessPattern() || defined[atom.Relation()] {
				continue
			}
			diagnostics = append(diagnostics, lint.Diagnostic{
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("relation %s is not defined by any fact or rule", atom.Relation()),
				Pos:      atom.Pos(),
			})
		}
	}
	for _, q := range prog.Queries() {
		if defined[q.Relation()] {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("query relation %s is not defined by any fact or rule", q.Relation()),
			Pos:      q.Pos(),
		})
	}
	return diagnostics
}
