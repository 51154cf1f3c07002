package format_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/format"
	"github.com/leapstack-labs/leapdl/pkg/parser"
)

func TestProgram(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single fact",
			input:    "p( 1,2 ) .",
			expected: "p(1, 2).\n",
		},
		{
			name:     "constants",
			input:    `p(+3, -2.50, 7.0, "x", "it's").`,
			expected: "p(3, -2.5, 7.0, 'x', \"it's\").\n",
		},
		{
			name:     "rule on one line",
			input:    "q(?x):=r(?x,?y),s{io}(?x,?z).",
			expected: "q(?x) := r(?x, ?y), s{io}(?x, ?z).\n",
		},
		{
			name:     "query",
			input:    "?q( ?a , 'b' ).",
			expected: "?q(?a, 'b').\n",
		},
		{
			name:  "kinds separated by blank lines",
			input: "a(1). a(2). b(?x) := a(?x). c(?x) := b(?x). ?c(?x).",
			expected: `a(1).
a(2).

b(?x) := a(?x).
c(?x) := b(?x).

?c(?x).
`,
		},
		{
			name:  "source order is kept",
			input: "?a(?x). a(1). ?a(?y).",
			expected: `?a(?x).

a(1).

?a(?y).
`,
		},
		{
			name: "long rule is broken after implies",
			input: `ancestor_of_person(?ancestor, ?descendant) := parent_of_person(?ancestor, ?middle),
			ancestor_of_person(?middle, ?descendant).`,
			expected: `ancestor_of_person(?ancestor, ?descendant) :=
  parent_of_person(?ancestor, ?middle),
  ancestor_of_person(?middle, ?descendant).
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format.Program(prog))
		})
	}
}

func TestProgram_Empty(t *testing.T) {
	assert.Equal(t, "", format.Program(datalog.NewProgram()))
}

func TestProgram_RuleAtMaxWidth(t *testing.T) {
	// "h(?x) := " is 9 characters and the final period one more.
	name := strings.Repeat("r", format.MaxWidth-9-1-len("(?x)"))
	input := "h(?x) := " + name + "(?x)."
	require.Len(t, input, format.MaxWidth)

	prog, err := parser.Parse(input)
	require.NoError(t, err)
	assert.Equal(t, input+"\n", format.Program(prog))

	prog, err = parser.Parse("h(?x) := " + name + "r(?x).")
	require.NoError(t, err)
	assert.Equal(t, "h(?x) :=\n  "+name+"r(?x).\n", format.Program(prog))
}

func TestStatement(t *testing.T) {
	prog, err := parser.Parse("p(1). q(?x) := p(?x). ?q(?a).")
	require.NoError(t, err)

	var got []string
	for _, s := range prog.Statements() {
		got = append(got, format.Statement(s))
	}
	assert.Equal(t, []string{"p(1).", "q(?x) := p(?x).", "?q(?a)."}, got)
}

func TestProgram_RoundTrip(t *testing.T) {
	inputs := []string{
		"a(1, 2).\naéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c).\n?aéb(?a, ?b, ?c).",
		"q(?a) := abc(?a, ?b), r(?c), r{iioo}(1, 2, ?a, ?d).",
		`p("say 'hi'", 'say "hi"', 0.001, 100000000000.5).`,
		"long_relation_name(?first, ?second, ?third) := source_one(?first, ?second), source_two{io}(?second, ?third).",
	}

	for _, input := range inputs {
		prog, err := parser.Parse(input)
		require.NoError(t, err)

		formatted := format.Program(prog)
		reparsed, err := parser.Parse(formatted)
		require.NoError(t, err, "formatted output must parse:\n%s", formatted)

		if diff := cmp.Diff(statementStrings(prog), statementStrings(reparsed)); diff != "" {
			t.Errorf("round trip changed the program (-want +got):\n%s", diff)
		}
		assert.Equal(t, formatted, format.Program(reparsed), "formatting is idempotent")
	}
}

func statementStrings(prog *datalog.Program) []string {
	var out []string
	for _, s := range prog.Statements() {
		out = append(out, s.String())
	}
	return out
}
