package parser_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/parser"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

// statements renders each statement of prog in source form.
func statements(prog *datalog.Program) []string {
	var out []string
	for _, s := range prog.Statements() {
		out = append(out, s.String())
	}
	return out
}

// ---------- Facts ----------

func TestParseFact(t *testing.T) {
	prog, err := parser.Parse("p(1, 2).")
	require.NoError(t, err)

	facts := prog.Facts()
	require.Len(t, facts, 1)
	assert.Empty(t, prog.Rules())
	assert.Empty(t, prog.Queries())

	fact := facts[0]
	assert.Equal(t, "p", fact.Relation())
	assert.True(t, fact.IsFact())
	assert.Equal(t, []datalog.Term{datalog.IntConstant(1), datalog.IntConstant(2)}, fact.Tuple().Terms())
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, fact.Pos())
}

func TestParseFactConstants(t *testing.T) {
	prog, err := parser.Parse(`abc(23, 'hello', -4, 3.5, +1.25, "x").`)
	require.NoError(t, err)
	require.Len(t, prog.Facts(), 1)

	terms := prog.Facts()[0].Tuple().Terms()
	require.Len(t, terms, 6)

	wantKinds := []datalog.Kind{
		datalog.KindInteger, datalog.KindString, datalog.KindInteger,
		datalog.KindReal, datalog.KindReal, datalog.KindString,
	}
	wantValues := []any{int64(23), "hello", int64(-4), 3.5, 1.25, "x"}
	for i, term := range terms {
		c, ok := term.(datalog.Constant)
		require.True(t, ok, "term %d should be a constant", i)
		assert.Equal(t, wantKinds[i], c.Kind(), "term %d", i)
		assert.Equal(t, wantValues[i], c.Value(), "term %d", i)
	}
}

func TestParseNonGroundFactIsAccepted(t *testing.T) {
	prog, err := parser.Parse("p(?x, 1).")
	require.NoError(t, err)
	require.Len(t, prog.Facts(), 1)
	assert.False(t, prog.Facts()[0].IsFact())
}

// ---------- Rules ----------

func TestParseRule(t *testing.T) {
	prog, err := parser.Parse("q(?x) := r(?x, ?y).")
	require.NoError(t, err)

	rules := prog.Rules()
	require.Len(t, rules, 1)

	rule := rules[0]
	assert.Equal(t, "q", rule.Head().Relation())
	assert.Equal(t, []string{"x"}, rule.Head().Tuple().Variables())

	body := rule.Body()
	require.Len(t, body, 1)
	assert.Equal(t, "r", body[0].Relation())
	assert.Equal(t, []string{"x", "y"}, body[0].Tuple().Variables())
	assert.False(t, body[0].HasAccessPattern())
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "two body atoms",
			input: "q(?a) := abc(?a, ?b), q(?v, 23).",
		},
		{
			name:  "bound input on last atom",
			input: "q(?x) := r(?x, ?y), s{io}(?x, ?z).",
		},
		{
			name:  "constant input on sole atom",
			input: "q(?a) := abc(?a, ?b), r(?c), r{iioo}(1, 2, ?a, ?d).",
		},
		{
			name:    "input on unbound variable of sole atom",
			input:   "q(?x) := r{io}(?x, ?y).",
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name:    "input on first position bound only as output",
			input:   "q(?x) := r(?x, ?y), s{io}(?z, ?x).",
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name:    "input on variable bound nowhere",
			input:   "q(?x) := r(?x, ?y), s{io}(?w, ?z).",
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name:    "pattern not on last atom",
			input:   "q(?x) := r{oo}(?x, ?y), s(?x).",
			wantErr: datalog.ErrMisplacedPattern,
		},
		{
			name:    "pattern length",
			input:   "q(?a) := r{iioo}(?w, ?v).",
			wantErr: datalog.ErrPatternLength,
		},
		{
			name:    "pattern length on head",
			input:   "q{i}(?a, ?b) := r(?a, ?b).",
			wantErr: datalog.ErrPatternLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Len(t, prog.Rules(), 1)
				return
			}
			require.Error(t, err)
			assert.Nil(t, prog)
			assert.ErrorIs(t, err, tt.wantErr)

			var semErr *parser.SemanticError
			require.True(t, errors.As(err, &semErr), "want *SemanticError, got %T", err)
			var verr *datalog.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestParseNotExecutableReportsRulePosition(t *testing.T) {
	_, err := parser.Parse("p(1).\n  q(?x) := r{io}(?x, ?y).")
	require.Error(t, err)

	var semErr *parser.SemanticError
	require.True(t, errors.As(err, &semErr))
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 8}, semErr.Pos)
	assert.Equal(t,
		"invalid program at line 2, column 3: rule not executable: input variable ?x at position 1 of r is not bound",
		err.Error())
}

// ---------- Queries ----------

func TestParseQuery(t *testing.T) {
	prog, err := parser.Parse("?q(?a, ?b).")
	require.NoError(t, err)

	queries := prog.Queries()
	require.Len(t, queries, 1)
	q := queries[0]
	assert.Equal(t, "q", q.Relation())
	assert.Equal(t, 2, q.Tuple().Arity())
	assert.Equal(t, []string{"a", "b"}, q.Tuple().Variables())
	assert.Empty(t, prog.Facts())
}

func TestParseQueryWithConstant(t *testing.T) {
	prog, err := parser.Parse("?aéb(?a, 'x', 3).")
	require.NoError(t, err)
	require.Len(t, prog.Queries(), 1)
	assert.Equal(t, "aéb", prog.Queries()[0].Relation())
}

// ---------- Programs ----------

func TestParseProgram(t *testing.T) {
	input := `a(1, 2).
          aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c).
          aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c).
          ?aéb(?a, ?b, ?c).`

	prog, err := parser.Parse(input)
	require.NoError(t, err)

	assert.Len(t, prog.Facts(), 1)
	assert.Len(t, prog.Rules(), 2)
	assert.Len(t, prog.Queries(), 1)

	want := []string{
		"a(1, 2)",
		"aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c)",
		"aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c)",
		"?aéb(?a, ?b, ?c)",
	}
	if diff := cmp.Diff(want, statements(prog)); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatementsOnOneLine(t *testing.T) {
	prog, err := parser.Parse("p(1).q(2).?p(?x).")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"p(1)", "q(2)", "?p(?x)"}, statements(prog)); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

// ---------- Syntax errors ----------

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFound token.TokenType
		wantPos   token.Position
		wantMsg   string
	}{
		{
			name:      "missing final period",
			input:     "p(1, 2)",
			wantFound: token.EOF,
			wantMsg:   `unexpected end of input, expected "." or ":="`,
		},
		{
			name:      "rule missing final period",
			input:     "q(?x) := r(?x)",
			wantFound: token.EOF,
			wantMsg:   `expected "," or "."`,
		},
		{
			name: "missing period between rules",
			input: `aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c)
              aéb(?a, ?b, ?c) := r('ab', ?b, 3.4, -23), a(?a, ?c).`,
			wantFound: token.STRING,
			wantPos:   token.Position{Line: 2, Column: 15, Offset: 67},
			wantMsg:   `unexpected STRING "aéb"`,
		},
		{
			name:      "empty input",
			input:     "  \n",
			wantFound: token.EOF,
			wantMsg:   "expected STRING or VARIABLE",
		},
		{
			name:      "empty tuple",
			input:     "p().",
			wantFound: token.RPAREN,
			wantMsg:   "expected VARIABLE, INTEGER, SIGNEDINTEGER, REALNUMBER, SIGNEDREALNUMBER or QUOTEDSTRING",
		},
		{
			name:      "atom without tuple",
			input:     "p.",
			wantFound: token.PERIOD,
			wantMsg:   `expected "("`,
		},
		{
			name:      "statement starts with constant",
			input:     "1(2).",
			wantFound: token.INTEGER,
		},
		{
			name:      "query with access pattern",
			input:     "?q{io}(?a, ?b).",
			wantFound: token.ACCESS_PATTERN,
		},
		{
			name:      "empty rule body",
			input:     "q(?x) := .",
			wantFound: token.PERIOD,
			wantMsg:   "expected STRING",
		},
		{
			name:      "trailing comma in tuple",
			input:     "p(1,).",
			wantFound: token.RPAREN,
		},
		{
			name:      "missing closing paren",
			input:     "p(1 2).",
			wantFound: token.INTEGER,
			wantMsg:   `expected "," or ")"`,
		},
		{
			name:      "nested tuple",
			input:     "p((1)).",
			wantFound: token.LPAREN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, prog, "no partial program on error")

			var parseErr *parser.ParseError
			require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T: %v", err, err)
			assert.Equal(t, tt.wantFound, parseErr.Found)
			if tt.wantPos.IsValid() {
				assert.Equal(t, tt.wantPos, parseErr.Pos)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := parser.Parse("p(1) q(2).")
	require.Error(t, err)
	assert.Equal(t, `parse error at line 1, column 6: unexpected STRING "q", expected "." or ":="`, err.Error())
}

func TestParseLexError(t *testing.T) {
	prog, err := parser.Parse("p(1). # comment")
	require.Error(t, err)
	assert.Nil(t, prog)

	var lexErr *parser.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, '#', lexErr.Char)
	assert.Contains(t, err.Error(), "'#'")
}

// ---------- Parser state ----------

func TestParserReuse(t *testing.T) {
	p := parser.NewParser("p(1). q(?x) := p(?x).")
	first, err := p.Parse()
	require.NoError(t, err)
	second, err := p.Parse()
	require.NoError(t, err)

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, second.Len(), "a second run does not accumulate onto the first")
	assert.NotSame(t, first, second)
}

func TestParseConcurrent(t *testing.T) {
	inputs := []string{
		"p(1).",
		"q(?x) := r(?x, ?y), s{io}(?x, ?z).",
		"?q(?a, ?b).",
		"a(1, 2). b(?x) := a(?x, ?y).",
	}
	want := []int{1, 1, 1, 2}

	var wg sync.WaitGroup
	got := make([]int, len(inputs)*25)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prog, err := parser.Parse(inputs[i%len(inputs)])
			if err == nil {
				got[i] = prog.Len()
			}
		}(i)
	}
	wg.Wait()

	for i, n := range got {
		assert.Equal(t, want[i%len(inputs)], n, "input %d", i%len(inputs))
	}
}
