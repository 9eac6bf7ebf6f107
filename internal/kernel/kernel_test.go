package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

func setup(t *testing.T) (*argument.Debate, []prop.Proposition) {
	t.Helper()
	pool := prop.NewPool()
	props := []prop.Proposition{pool.Add("a"), pool.Add("b")}
	arg, err := argument.New([]prop.Literal{prop.Pos(props[0])}, prop.Pos(props[1]))
	require.NoError(t, err)
	return argument.Empty(props).Append(arg), props
}

func TestFromDebateBuildsOneClausePerArgument(t *testing.T) {
	d, props := setup(t)
	f := FromDebate(d)

	require.Len(t, f.Clauses, 1)
	assert.Len(t, f.Vars, len(props))
	assert.Len(t, f.Clauses[0], 2, "clause should hold the negated premise and the conclusion")
}

func TestFromDebateEmptyHasNoClauses(t *testing.T) {
	pool := prop.NewPool()
	props := []prop.Proposition{pool.Add("a")}
	f := FromDebate(argument.Empty(props))
	assert.Empty(t, f.Clauses)
}

func TestWithAssumptionsAppendsUnitClauses(t *testing.T) {
	d, props := setup(t)
	f := FromDebate(d)
	extended := f.WithAssumptions([]prop.Literal{prop.Pos(props[0])})

	assert.Len(t, extended.Clauses, len(f.Clauses)+1)
	assert.Len(t, f.Clauses, 1, "WithAssumptions must not mutate the receiver")
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	pool := prop.NewPool()
	a, b, c := pool.Add("a"), pool.Add("b"), pool.Add("c")

	f1 := &Formula{Vars: []prop.Proposition{a, b, c}, Clauses: []Clause{{prop.Pos(a), prop.Neg(b)}, {prop.Pos(c)}}}
	f2 := &Formula{Vars: []prop.Proposition{c, a, b}, Clauses: []Clause{{prop.Pos(c)}, {prop.Neg(b), prop.Pos(a)}}}

	assert.Equal(t, f1.Fingerprint(), f2.Fingerprint())
}

func TestFingerprintDistinguishesDifferentFormulas(t *testing.T) {
	pool := prop.NewPool()
	a, b := pool.Add("a"), pool.Add("b")

	f1 := &Formula{Vars: []prop.Proposition{a, b}, Clauses: []Clause{{prop.Pos(a)}}}
	f2 := &Formula{Vars: []prop.Proposition{a, b}, Clauses: []Clause{{prop.Neg(a)}}}

	assert.NotEqual(t, f1.Fingerprint(), f2.Fingerprint())
}

func TestEngineIsSatisfiable(t *testing.T) {
	d, _ := setup(t)
	e := NewEngine(0)

	sat, err := e.IsSatisfiable(FromDebate(d))
	require.NoError(t, err)
	assert.True(t, sat, "a ⇒ b should be satisfiable")
}

func TestEngineIsSatisfiableDetectsContradiction(t *testing.T) {
	pool := prop.NewPool()
	a := pool.Add("a")
	b := pool.Add("b")
	argAB, err := argument.New([]prop.Literal{prop.Pos(a)}, prop.Pos(b))
	require.NoError(t, err)
	argANotB, err := argument.New([]prop.Literal{prop.Pos(a)}, prop.Neg(b))
	require.NoError(t, err)
	d := argument.Empty([]prop.Proposition{a, b}).Append(argAB).Append(argANotB)

	e := NewEngine(0)
	sat, err := e.CountUnder(FromDebate(d), []prop.Literal{prop.Pos(a)})
	require.NoError(t, err)
	assert.False(t, sat, "asserting a should force both b and ¬b")
}

func TestEngineModelCountEmptyDebate(t *testing.T) {
	pool := prop.NewPool()
	props := []prop.Proposition{pool.Add("a"), pool.Add("b")}
	e := NewEngine(0)

	count, err := e.ModelCount(FromDebate(argument.Empty(props)))
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<len(props), count)
}

func TestEngineModelCountSingleArgument(t *testing.T) {
	d, props := setup(t)
	e := NewEngine(0)

	count, err := e.ModelCount(FromDebate(d))
	require.NoError(t, err)
	// a ⇒ b over {a,b} rules out exactly one of the 4 assignments (a=T,b=F).
	assert.Equal(t, uint64(1)<<len(props)-1, count)
}

func TestEngineEnumerateProjectsOntoCareVars(t *testing.T) {
	d, props := setup(t)
	e := NewEngine(0)

	it, err := e.Enumerate(FromDebate(d), []prop.Proposition{props[1]})
	require.NoError(t, err)

	seen := map[bool]bool{}
	for {
		model, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		seen[model[props[1]]] = true
	}
	assert.Len(t, seen, 2, "enumeration restricted to one care variable should still cover both its values")
}
