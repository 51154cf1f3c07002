// Package lint reports advisory findings about LeapDL programs.
//
// A program that parses is structurally valid, but it may still be
// inconsistent across statements: a relation used with two arities, a body
// atom naming a relation nothing defines, a head variable the body never
// binds. The parser accepts all of these; lint reports them as diagnostics
// and never rejects a program.
//
// # Rule Registration
//
// Built-in rules register themselves from init() functions:
//
//	import _ "github.com/leapstack-labs/leapdl/pkg/lint/rules"
//
// # Configuration
//
// Use Config to disable rules or change their severity:
//
//	config := lint.NewConfig()
//	config.Disable("DL01")
//	config.SetSeverity("DL02", lint.SeverityError)
//
//	diags := lint.NewAnalyzer(config).Analyze(prog)
package lint
