package lint

import (
	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// RuleDef is a data-driven rule definition.
// Rules are stateless; all context comes via the program passed to Check.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "DL01"
	Name        string    // Human-readable name, e.g., "facts.non_ground"
	Group       string    // Category, e.g., "facts", "relations", "variables"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function

	Rationale   string
	BadExample  string
	GoodExample string
}

// CheckFunc analyzes a program and returns diagnostics. Diagnostics carry
// the rule's default severity; the analyzer applies overrides.
type CheckFunc func(prog *datalog.Program) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id" yaml:"rule_id"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Message  string         `json:"message" yaml:"message"`
	Pos      token.Position `json:"pos" yaml:"pos"`
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Group           string   `json:"group" yaml:"group"`
	Description     string   `json:"description" yaml:"description"`
	DefaultSeverity Severity `json:"default_severity" yaml:"default_severity"`
	Rationale       string   `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	BadExample      string   `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	GoodExample     string   `json:"good_example,omitempty" yaml:"good_example,omitempty"`
}

// Info extracts the documentation metadata of a rule.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
	}
}
