package rules

import (
	"fmt"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
)

func init() {
	lint.Register(UnboundHeadVariable)
}

// UnboundHeadVariable warns about head variables that no body atom binds.
var UnboundHeadVariable = lint.RuleDef{
	ID:          "DL04",
	Name:        "variables.unbound_head",
	Group:       "variables",
	Description: "Head variable does not appear in the rule body.",
	Severity:    lint.SeverityWarning,
	Check:       checkUnboundHeadVariable,
	Rationale:   "A rule is range restricted when every head variable is bound by the body. Otherwise the head derives infinitely many tuples.",
	BadExample:  "q(?x, ?y) := r(?x).",
	GoodExample: "q(?x, ?y) := r(?x), s(?y).",
}

func checkUnboundHeadVariable(prog *datalog.Program) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, rule := range prog.Rules() {
		bound := make(map[string]bool)
		for _, atom := range rule.Body() {
			for _, v := range atom.Tuple().Variables() {
				bound[v] = true
			}
		}

		head := rule.Head()
		for _, v := range head.Tuple().Variables() {
			if bound[v] {
				continue
			}
			diagnostics = append(diagnostics, lint.Diagnostic{
				Severity: lint.SeverityWarning,
				Message:  fmt.Sprintf("head variable ?%s of %s is not bound by the body", v, head.Relation()),
				Pos:      head.Pos(),
			})
		}
	}
	return diagnostics
}
