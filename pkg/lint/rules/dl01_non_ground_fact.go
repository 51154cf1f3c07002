package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

func init() {
	lint.Register(NonGroundFact)
}

// NonGroundFact warns about fact statements that contain variables.
var NonGroundFact = lint.RuleDef{
	ID:          "DL01",
	Name:        "facts.non_ground",
	Group:       "facts",
	Description: "Fact contains a variable.",
	Severity:    lint.SeverityWarning,
	Check:       checkNonGroundFact,
	Rationale:   "A fact asserts a tuple of constants. A variable in a fact has no body to bind it.",
	BadExample:  "parent(?x, 'bob').",
	GoodExample: "parent('alice', 'bob').",
}

func checkNonGroundFact(prog *datalog.Program) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, fact := range prog.Facts() {
		if fact.IsFact() {
			continue
		}
		vars := fact.Tuple().Variables()
		for i, v := range vars {
			vars[i] = "?" + v
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("fact %s contains variables %s", fact.Relation(), strings.Join(vars, ", ")),
			Pos:      fact.Pos(),
		})
	}
	return diagnostics
}
