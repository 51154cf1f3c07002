package lint

import (
	"sort"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
)

// Analyzer runs lint rules against parsed programs.
type Analyzer struct {
	config   *Config
	registry *Registry
}

// NewAnalyzer creates an analyzer over the global registry.
func NewAnalyzer(config *Config) *Analyzer {
	return NewAnalyzerWithRegistry(config, globalRegistry)
}

// NewAnalyzerWithRegistry creates an analyzer that runs the rules of registry.
func NewAnalyzerWithRegistry(config *Config, registry *Registry) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	if registry == nil {
		registry = globalRegistry
	}
	return &Analyzer{config: config, registry: registry}
}

// Analyze runs every enabled rule against prog. Diagnostics are ordered by
// position, then by rule ID.
func (a *Analyzer) Analyze(prog *datalog.Program) []Diagnostic {
	if prog == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range a.registry.All() {
		if a.config.IsDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(prog)
		for i := range diags {
			diags[i].RuleID = rule.ID
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		pi, pj := diagnostics[i].Pos, diagnostics[j].Pos
		if pi != pj {
			return pi.Before(pj)
		}
		return diagnostics[i].RuleID < diagnostics[j].RuleID
	})
	return diagnostics
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
