package revision

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

func twoAtomDebate(t *testing.T) (*argument.Debate, []prop.Proposition) {
	t.Helper()
	pool := prop.NewPool()
	a, b := pool.Add("a"), pool.Add("b")
	arg, err := argument.New([]prop.Literal{prop.Pos(a)}, prop.Pos(b))
	require.NoError(t, err)
	return argument.Empty([]prop.Proposition{a, b}).Append(arg), []prop.Proposition{a, b}
}

func TestRandomRefitReturnsACoherentCompletePosition(t *testing.T) {
	d, atoms := twoAtomDebate(t)
	engine := kernel.NewEngine(0)
	rng := rand.New(rand.NewSource(1))

	p, err := RandomRefit(engine, d, rng)
	require.NoError(t, err)
	assert.True(t, p.Complete(atoms))

	coherent, err := position.Coherent(engine, d, p)
	require.NoError(t, err)
	assert.True(t, coherent, "RandomRefit should only ever return a coherent position")
}

func TestClosestCoherentPicksMinimalHammingDistance(t *testing.T) {
	d, atoms := twoAtomDebate(t)
	engine := kernel.NewEngine(0)
	rng := rand.New(rand.NewSource(1))

	// a=T,b=F is incoherent (the debate forces a⇒b); its closest coherent
	// neighbour should be a=T,b=T or a=F,b=F, both one flip away.
	target := position.Position{atoms[0]: true, atoms[1]: false}
	got, err := ClosestCoherent(engine, d, target, rng)
	require.NoError(t, err)

	coherent, err := position.Coherent(engine, d, got)
	require.NoError(t, err)
	assert.True(t, coherent)
}

func TestClosestCoherentOnAlreadyCoherentTargetReturnsItself(t *testing.T) {
	d, atoms := twoAtomDebate(t)
	engine := kernel.NewEngine(0)
	rng := rand.New(rand.NewSource(1))

	target := position.Position{atoms[0]: true, atoms[1]: true}
	got, err := ClosestCoherent(engine, d, target, rng)
	require.NoError(t, err)
	assert.True(t, got.Equal(target))
}

func TestClosestClosedPartialCoherentFindsAgreement(t *testing.T) {
	d, atoms := twoAtomDebate(t)
	engine := kernel.NewEngine(0)

	p := position.Position{atoms[0]: true, atoms[1]: false}
	got, err := ClosestClosedPartialCoherent(engine, d, p, ClosestClosedPartialCoherentOptions{MaxRadius: 2})
	require.NoError(t, err)

	coherent, err := position.Coherent(engine, d, got)
	require.NoError(t, err)
	assert.True(t, coherent)
}

func TestClosestClosedPartialCoherentExhaustsRadius(t *testing.T) {
	// A radius of -1 never even tries the zero-radius candidate, so the
	// search must report exhaustion rather than loop forever.
	pool := prop.NewPool()
	atoms := []prop.Proposition{pool.Add("a")}
	d := argument.Empty(atoms)
	engine := kernel.NewEngine(0)
	_, err := ClosestClosedPartialCoherent(engine, d, position.Position{atoms[0]: true}, ClosestClosedPartialCoherentOptions{MaxRadius: -1})
	assert.ErrorIs(t, err, ErrSearchRadiusExhausted)
}
