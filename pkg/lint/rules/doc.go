// Package rules provides the built-in LeapDL lint rules.
//
// Rules are organized by group:
//   - facts: DL01
//   - relations: DL02, DL03
//   - variables: DL04
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/leapdl/pkg/lint/rules"
package rules
