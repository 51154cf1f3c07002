package datalog_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdl/pkg/datalog"
	"github.com/leapstack-labs/leapdl/pkg/token"
)

func mustVar(t *testing.T, name string) datalog.Variable {
	t.Helper()
	v, err := datalog.NewVariable(name)
	require.NoError(t, err)
	return v
}

func mustTuple(t *testing.T, terms ...datalog.Term) datalog.Tuple {
	t.Helper()
	tup, err := datalog.NewTuple(terms...)
	require.NoError(t, err)
	return tup
}

func mustAtom(t *testing.T, rel string, pattern string, terms ...datalog.Term) datalog.Atom {
	t.Helper()
	tup := mustTuple(t, terms...)
	var (
		a   datalog.Atom
		err error
	)
	if pattern == "" {
		a, err = datalog.NewAtom(rel, tup)
	} else {
		a, err = datalog.NewAtomWithPattern(rel, tup, pattern)
	}
	require.NoError(t, err)
	return a
}

// ---------- Terms ----------

func TestConstant(t *testing.T) {
	c := datalog.IntConstant(28)
	assert.Equal(t, datalog.KindInteger, c.Kind())
	assert.Equal(t, int64(28), c.Value())
	assert.Equal(t, "28", c.String())

	r, err := datalog.RealConstant(3.4)
	require.NoError(t, err)
	assert.Equal(t, datalog.KindReal, r.Kind())
	assert.Equal(t, 3.4, r.Value())
	assert.Equal(t, "3.4", r.String())

	whole, err := datalog.RealConstant(-2)
	require.NoError(t, err)
	assert.Equal(t, "-2.0", whole.String(), "reals keep a decimal point")

	s, err := datalog.StringConstant("ab")
	require.NoError(t, err)
	assert.Equal(t, datalog.KindString, s.Kind())
	assert.Equal(t, "ab", s.Value())
	assert.Equal(t, "'ab'", s.String())

	apos, err := datalog.StringConstant("it's")
	require.NoError(t, err)
	assert.Equal(t, `"it's"`, apos.String())
}

func TestConstantRejectsUnrepresentable(t *testing.T) {
	_, err := datalog.RealConstant(math.NaN())
	assert.ErrorIs(t, err, datalog.ErrInvalidConstant)
	_, err = datalog.RealConstant(math.Inf(-1))
	assert.ErrorIs(t, err, datalog.ErrInvalidConstant)
	_, err = datalog.StringConstant(`a'b"c`)
	assert.ErrorIs(t, err, datalog.ErrInvalidConstant)
	_, err = datalog.StringConstant("two\nlines")
	assert.ErrorIs(t, err, datalog.ErrInvalidConstant)
}

func TestVariable(t *testing.T) {
	v := mustVar(t, "a")
	assert.Equal(t, "a", v.Name())
	assert.Equal(t, "?a", v.String())

	_, err := datalog.NewVariable("aéb")
	assert.NoError(t, err, "unicode letters are identifier characters")

	for _, bad := range []string{"", "?a", "a b", "a-b"} {
		_, err := datalog.NewVariable(bad)
		assert.ErrorIs(t, err, datalog.ErrInvalidName, "name %q", bad)
	}
}

// ---------- Tuple ----------

func TestTuple(t *testing.T) {
	a, b := mustVar(t, "a"), mustVar(t, "b")
	c := datalog.IntConstant(28)

	tup := mustTuple(t, a, c, b, a)
	assert.Equal(t, 4, tup.Arity())
	assert.Equal(t, []datalog.Term{a, c, b, a}, tup.Terms())
	assert.Equal(t, []string{"a", "b"}, tup.Variables())
	assert.False(t, tup.IsGround())
	assert.Equal(t, "(?a, 28, ?b, ?a)", tup.String())

	ground := mustTuple(t, c)
	assert.Empty(t, ground.Variables())
	assert.True(t, ground.IsGround())
}

func TestTupleRejectsNonTerm(t *testing.T) {
	_, err := datalog.NewTuple(mustVar(t, "a"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrInvalidTerm)

	var verr *datalog.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Detail, "element 1")
}

func TestTupleTermsIsCopy(t *testing.T) {
	tup := mustTuple(t, datalog.IntConstant(1))
	terms := tup.Terms()
	terms[0] = datalog.IntConstant(2)
	assert.Equal(t, datalog.IntConstant(1), tup.Term(0))
}

// ---------- AccessPattern ----------

func TestAccessPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		arity   int
		wantErr error
	}{
		{name: "braced", pattern: "{io}", arity: 2},
		{name: "bare", pattern: "oi", arity: 2},
		{name: "too long", pattern: "{iio}", arity: 2, wantErr: datalog.ErrPatternLength},
		{name: "too short", pattern: "{i}", arity: 2, wantErr: datalog.ErrPatternLength},
		{name: "bad char", pattern: "{it}", arity: 2, wantErr: datalog.ErrPatternChar},
		{name: "length before char", pattern: "{xyz}", arity: 2, wantErr: datalog.ErrPatternLength},
		{name: "multibyte counted once", pattern: "{é}", arity: 1, wantErr: datalog.ErrPatternChar},
		{name: "rune with low byte of i", pattern: "{\u0169}", arity: 1, wantErr: datalog.ErrPatternChar},
		{name: "open brace only", pattern: "{io", arity: 2, wantErr: datalog.ErrPatternLength},
		{name: "close brace only", pattern: "io}", arity: 2, wantErr: datalog.ErrPatternLength},
		{name: "lone brace as flag", pattern: "{i", arity: 2, wantErr: datalog.ErrPatternChar},
		{name: "empty braces", pattern: "{}", arity: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap, err := datalog.NewAccessPattern(tt.pattern, tt.arity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.arity, ap.Len())
		})
	}
}

func TestAccessPatternCharMessage(t *testing.T) {
	_, err := datalog.NewAccessPattern("{it}", 2)
	require.Error(t, err)
	assert.Equal(t, "invalid access pattern: t", err.Error())
}

func TestAccessPatternModes(t *testing.T) {
	ap, err := datalog.NewAccessPattern("{io}", 2)
	require.NoError(t, err)
	assert.Equal(t, []datalog.Mode{datalog.Input, datalog.Output}, ap.Modes())
	assert.Equal(t, "input", ap.Mode(0).String())
	assert.Equal(t, "output", ap.Mode(1).String())
	assert.Equal(t, "{io}", ap.String())
}

// ---------- Atom ----------

func TestAtom(t *testing.T) {
	a := mustVar(t, "a")
	atom := mustAtom(t, "r1", "", a, a)
	assert.Equal(t, "r1", atom.Relation())
	assert.Equal(t, 2, atom.Tuple().Arity())
	_, ok := atom.AccessPattern()
	assert.False(t, ok)
	assert.False(t, atom.Pos().IsValid())
	assert.Equal(t, "r1(?a, ?a)", atom.String())

	withAP := mustAtom(t, "r1", "{io}", a, a)
	ap, ok := withAP.AccessPattern()
	require.True(t, ok)
	assert.Equal(t, 2, ap.Len())
	assert.Equal(t, "r1{io}(?a, ?a)", withAP.String())

	placed := atom.At(token.Position{Line: 3, Column: 1})
	assert.Equal(t, 3, placed.Pos().Line)
	assert.False(t, atom.Pos().IsValid(), "At returns a copy")
}

func TestAtomValidation(t *testing.T) {
	tup := mustTuple(t, mustVar(t, "a"), mustVar(t, "b"))

	_, err := datalog.NewAtomWithPattern("r1", tup, "{iio}")
	assert.ErrorIs(t, err, datalog.ErrPatternLength)
	assert.Equal(t, "invalid size of access pattern: pattern has 3 flags, tuple has arity 2", err.Error())

	_, err = datalog.NewAtomWithPattern("r1", tup, "{it}")
	assert.ErrorIs(t, err, datalog.ErrPatternChar)

	_, err = datalog.NewAtom("", tup)
	assert.ErrorIs(t, err, datalog.ErrInvalidName)

	_, err = datalog.NewAtom("a.b", tup)
	assert.ErrorIs(t, err, datalog.ErrInvalidName)
}

func TestAtomIsFact(t *testing.T) {
	x := mustVar(t, "x")
	one := datalog.IntConstant(1)

	assert.True(t, mustAtom(t, "p", "", one, one).IsFact())
	assert.False(t, mustAtom(t, "p", "", x, one).IsFact())
	// A variable past the first position still makes it non-ground.
	assert.False(t, mustAtom(t, "p", "", one, x).IsFact())
}

// ---------- Rule ----------

func TestRuleExecutability(t *testing.T) {
	x, y, z, w := mustVar(t, "x"), mustVar(t, "y"), mustVar(t, "z"), mustVar(t, "w")
	head := mustAtom(t, "q", "", x)

	tests := []struct {
		name    string
		body    []datalog.Atom
		wantErr error
	}{
		{
			name: "input bound by earlier atom",
			body: []datalog.Atom{
				mustAtom(t, "r", "", x, y),
				mustAtom(t, "s", "{io}", x, z),
			},
		},
		{
			name: "input flag on the unbound first position",
			body: []datalog.Atom{
				mustAtom(t, "r", "", x, y),
				mustAtom(t, "s", "{io}", z, x),
			},
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name: "input unbound",
			body: []datalog.Atom{
				mustAtom(t, "r", "", x, y),
				mustAtom(t, "s", "{io}", w, z),
			},
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name: "input on constant imposes nothing",
			body: []datalog.Atom{
				mustAtom(t, "s", "{io}", datalog.IntConstant(1), z),
			},
		},
		{
			name: "output positions impose nothing",
			body: []datalog.Atom{
				mustAtom(t, "s", "{oo}", w, z),
			},
		},
		{
			name: "single atom body with input variable",
			body: []datalog.Atom{
				mustAtom(t, "r", "{io}", x, y),
			},
			wantErr: datalog.ErrNotExecutable,
		},
		{
			name: "pattern on non-last atom",
			body: []datalog.Atom{
				mustAtom(t, "r", "{oo}", x, y),
				mustAtom(t, "s", "", x, z),
			},
			wantErr: datalog.ErrMisplacedPattern,
		},
		{
			name: "pattern on non-last atom even when bound",
			body: []datalog.Atom{
				mustAtom(t, "r", "", x),
				mustAtom(t, "s", "{io}", x, y),
				mustAtom(t, "t", "", y),
			},
			wantErr: datalog.ErrMisplacedPattern,
		},
		{
			name: "no pattern",
			body: []datalog.Atom{
				mustAtom(t, "r", "", w, z),
			},
		},
		{
			name:    "empty body",
			body:    nil,
			wantErr: datalog.ErrEmptyBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := datalog.NewRule(head, tt.body)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, head, rule.Head())
			assert.Len(t, rule.Body(), len(tt.body))
		})
	}
}

func TestRuleNotExecutableMessage(t *testing.T) {
	x, y := mustVar(t, "x"), mustVar(t, "y")
	_, err := datalog.NewRule(mustAtom(t, "q", "", x), []datalog.Atom{mustAtom(t, "r", "{io}", x, y)})
	require.Error(t, err)
	assert.Equal(t, "rule not executable: input variable ?x at position 1 of r is not bound", err.Error())
}

func TestRuleNotExecutableMessage_LaterPosition(t *testing.T) {
	x, y, z := mustVar(t, "x"), mustVar(t, "y"), mustVar(t, "z")
	_, err := datalog.NewRule(mustAtom(t, "q", "", x), []datalog.Atom{
		mustAtom(t, "r", "", x, y),
		mustAtom(t, "s", "{io}", z, x),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, datalog.ErrNotExecutable)
	assert.Equal(t, "rule not executable: input variable ?z at position 1 of s is not bound", err.Error())
}

func TestRuleBodyIsCopied(t *testing.T) {
	x := mustVar(t, "x")
	body := []datalog.Atom{mustAtom(t, "r", "", x)}
	rule, err := datalog.NewRule(mustAtom(t, "q", "", x), body)
	require.NoError(t, err)

	body[0] = mustAtom(t, "other", "", x)
	assert.Equal(t, "r", rule.Body()[0].Relation())
	assert.Equal(t, "q(?x) := r(?x)", rule.String())
}

// ---------- Query / Program ----------

func TestQuery(t *testing.T) {
	tup := mustTuple(t, mustVar(t, "a"), mustVar(t, "b"))
	q, err := datalog.NewQuery("q", tup)
	require.NoError(t, err)
	assert.Equal(t, "q", q.Relation())
	assert.Equal(t, 2, q.Tuple().Arity())
	assert.Equal(t, "?q(?a, ?b)", q.String())

	_, err = datalog.NewQuery("", tup)
	assert.ErrorIs(t, err, datalog.ErrInvalidName)
}

func TestProgram(t *testing.T) {
	x := mustVar(t, "x")
	fact := mustAtom(t, "p", "", datalog.IntConstant(1))
	rule, err := datalog.NewRule(mustAtom(t, "q", "", x), []datalog.Atom{mustAtom(t, "p", "", x)})
	require.NoError(t, err)
	query, err := datalog.NewQuery("q", mustTuple(t, x))
	require.NoError(t, err)

	p := datalog.NewProgram()
	p.AddQuery(query)
	p.AddFact(fact)
	p.AddRule(rule)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []datalog.Atom{fact}, p.Facts())
	assert.Equal(t, []*datalog.Rule{rule}, p.Rules())
	assert.Equal(t, []datalog.Query{query}, p.Queries())

	stmts := p.Statements()
	require.Len(t, stmts, 3)
	assert.IsType(t, datalog.Query{}, stmts[0])
	assert.IsType(t, datalog.Atom{}, stmts[1])
	assert.IsType(t, &datalog.Rule{}, stmts[2])
}

func TestProgramsDoNotAlias(t *testing.T) {
	a := datalog.NewProgram()
	b := datalog.NewProgram()
	a.AddFact(mustAtom(t, "p", "", datalog.IntConstant(1)))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Facts())
}
