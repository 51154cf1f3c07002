package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

func init() {
	lint.Register(ArityMismatch)
}

// ArityMismatch reports relations used with more than one arity.
var ArityMismatch = lint.RuleDef{
	ID:          "DL03",
	Name:        "relations.arity_mismatch",
	Group:       "relations",
	Description: "Relation is used with different arities.",
	Severity:    lint.SeverityError,
	Check:       checkArityMismatch,
	Rationale:   "Tuples of different arity never unify, so the uses can never see each other's data.",
	BadExample:  "edge(1, 2).\npath(?x) := edge(?x).",
	GoodExample: "edge(1, 2).\npath(?x, ?y) := edge(?x, ?y).",
}

func checkArityMismatch(prog *datalog.Program) []lint.Diagnostic {
	first := make(map[string]relationUse)

	var diagnostics []lint.Diagnostic
	for _, use := range relationUses(prog) {
		prev, seen := first[use.relation]
		if !seen {
			first[use.relation] = use
			continue
		}
		if prev.arity == use.arity {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			Severity: lint.SeverityError,
			Message: fmt.Sprintf("relation %s used with arity %d, first used with arity %d at %s",
				use.relation, use.arity, prev.arity, prev.pos),
			Pos: use.pos,
		})
	}
	return diagnostics
}
