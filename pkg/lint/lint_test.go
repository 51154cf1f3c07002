package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/lint"
	"github.com/leapstack-labs/leapdl/pkg/parser"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// perStatement reports every statement, reversed, so the analyzer has to sort.
var perStatement = lint.RuleDef{
	ID:       "T02",
	Name:     "test.per_statement",
	Group:    "test",
	Severity: lint.SeverityInfo,
	Check: func(prog *datalog.Program) []lint.Diagnostic {
		stmts := prog.Statements()
		var diags []lint.Diagnostic
		for i := len(stmts) - 1; i >= 0; i-- {
			diags = append(diags, lint.Diagnostic{
				Severity: lint.SeverityInfo,
				Message:  stmts[i].String(),
				Pos:      stmts[i].Pos(),
			})
		}
		return diags
	},
}

var firstOnly = lint.RuleDef{
	ID:       "T01",
	Name:     "test.first",
	Group:    "test",
	Severity: lint.SeverityWarning,
	Check: func(prog *datalog.Program) []lint.Diagnostic {
		return []lint.Diagnostic{{
			Severity: lint.SeverityWarning,
			Message:  "first",
			Pos:      prog.Statements()[0].Pos(),
		}}
	},
}

func newRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	reg.Register(perStatement)
	reg.Register(firstOnly)
	return reg
}

func mustParse(t *testing.T, src string) *datalog.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return prog
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want lint.Severity
		ok   bool
	}{
		{"error", lint.SeverityError, true},
		{"WARNING", lint.SeverityWarning, true},
		{"info", lint.SeverityInfo, true},
		{"hint", lint.SeverityHint, true},
		{"fatal", lint.SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := lint.ParseSeverity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "unknown", lint.Severity(42).String())
	text, err := lint.SeverityHint.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hint", string(text))

	var sev lint.Severity
	require.NoError(t, sev.UnmarshalText([]byte("Error")))
	assert.Equal(t, lint.SeverityError, sev)
	assert.Error(t, sev.UnmarshalText([]byte("fatal")))
}

func TestConfig(t *testing.T) {
	c := lint.NewConfig().Disable("DL01").SetSeverity("DL02", lint.SeverityError)

	assert.True(t, c.IsDisabled("DL01"))
	assert.False(t, c.IsDisabled("DL02"))
	assert.Equal(t, lint.SeverityError, c.GetSeverity("DL02", lint.SeverityWarning))
	assert.Equal(t, lint.SeverityWarning, c.GetSeverity("DL03", lint.SeverityWarning))

	var nilConfig *lint.Config
	assert.False(t, nilConfig.IsDisabled("DL01"))
	assert.Equal(t, lint.SeverityHint, nilConfig.GetSeverity("DL01", lint.SeverityHint))
}

func TestConfigFrom(t *testing.T) {
	c, err := lint.ConfigFrom([]string{"DL01"}, map[string]string{"DL04": "error"})
	require.NoError(t, err)
	assert.True(t, c.IsDisabled("DL01"))
	assert.Equal(t, lint.SeverityError, c.GetSeverity("DL04", lint.SeverityWarning))

	_, err = lint.ConfigFrom(nil, map[string]string{"DL04": "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid severity "loud"`)
}

func TestRegistry(t *testing.T) {
	reg := newRegistry()
	assert.Equal(t, 2, reg.Count())

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "T01", all[0].ID)
	assert.Equal(t, "T02", all[1].ID)

	rule, ok := reg.ByID("T02")
	require.True(t, ok)
	assert.Equal(t, "test.per_statement", rule.Name)

	_, ok = reg.ByID("nope")
	assert.False(t, ok)

	assert.Len(t, reg.ByGroup("test"), 2)
	assert.Empty(t, reg.ByGroup("other"))

	info := rule.Info()
	assert.Equal(t, "T02", info.ID)
	assert.Equal(t, lint.SeverityInfo, info.DefaultSeverity)
}

func TestAnalyzer_SortsByPosition(t *testing.T) {
	prog := mustParse(t, "a(1).\nb(2).\nc(3).")

	diags := lint.NewAnalyzerWithRegistry(nil, newRegistry()).Analyze(prog)
	require.Len(t, diags, 4)

	var got []string
	for _, d := range diags {
		got = append(got, d.RuleID+" "+d.Pos.String())
	}
	assert.Equal(t, []string{"T01 1:1", "T02 1:1", "T02 2:1", "T02 3:1"}, got)
	assert.Equal(t, token.Position{Line: 2, Column: 1, Offset: 6}, diags[2].Pos)
}

func TestAnalyzer_Config(t *testing.T) {
	prog := mustParse(t, "a(1).")

	config := lint.NewConfig().Disable("T02").SetSeverity("T01", lint.SeverityError)
	diags := lint.NewAnalyzerWithRegistry(config, newRegistry()).Analyze(prog)

	require.Len(t, diags, 1)
	assert.Equal(t, "T01", diags[0].RuleID)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)
	assert.True(t, lint.HasErrors(diags))
}

func TestAnalyzer_NilProgram(t *testing.T) {
	assert.Nil(t, lint.NewAnalyzerWithRegistry(nil, newRegistry()).Analyze(nil))
}

func TestHasErrors(t *testing.T) {
	assert.False(t, lint.HasErrors(nil))
	assert.False(t, lint.HasErrors([]lint.Diagnostic{{Severity: lint.SeverityWarning}}))
	assert.True(t, lint.HasErrors([]lint.Diagnostic{{Severity: lint.SeverityHint}, {Severity: lint.SeverityError}}))
}
