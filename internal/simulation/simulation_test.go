package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
	"github.com/quanticsoul4772/dialectical-sim/internal/simconfig"
)

func TestNewBuildsEmptyDebateWithFullPool(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.SentencePoolSize = 5
	cfg.InitialPositionCount = 2
	sim := New(cfg)

	assert.Equal(t, 0, sim.Debate().Len())
	assert.Len(t, sim.Debate().Atoms(), 5)
	assert.Len(t, sim.Positions(), 2)
}

func TestRunTerminatesWithinMaxSteps(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.SentencePoolSize = 6
	cfg.MaxSentencePoolSize = 6
	cfg.KeyStatementCount = 2
	cfg.InitialPositionCount = 2
	cfg.MaxSteps = 10
	cfg.Seed = 3

	sim := New(cfg)
	trace, err := sim.Run()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(trace.Events), cfg.MaxSteps)
	assert.NotEmpty(t, trace.RunID)
}

func TestMeanPairwiseAgreementIdenticalPositions(t *testing.T) {
	pool := prop.NewPool()
	atoms := []prop.Proposition{pool.Add("a"), pool.Add("b")}
	p := position.Position{atoms[0]: true, atoms[1]: false}
	positions := []position.Position{p, p.Clone(), p.Clone()}

	assert.Equal(t, 1.0, MeanPairwiseAgreement(positions, atoms))
}

func TestMeanPairwiseAgreementOppositePositions(t *testing.T) {
	pool := prop.NewPool()
	atoms := []prop.Proposition{pool.Add("a"), pool.Add("b")}
	p := position.Position{atoms[0]: true, atoms[1]: false}
	q := p.Inverse()

	assert.Equal(t, 0.0, MeanPairwiseAgreement([]position.Position{p, q}, atoms))
}

func TestMeanPairwiseAgreementSingletonIsOne(t *testing.T) {
	pool := prop.NewPool()
	atoms := []prop.Proposition{pool.Add("a")}
	assert.Equal(t, 1.0, MeanPairwiseAgreement([]position.Position{position.New()}, atoms))
}

func TestRunWithNoInitialPositionsDoesNotPanic(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.SentencePoolSize = 4
	cfg.InitialPositionCount = 0
	cfg.InitialPositionSize = 0
	cfg.MaxSteps = 10
	cfg.IntroductionStrategy = "random"
	cfg.Seed = 7

	sim := New(cfg)
	require.Empty(t, sim.Positions())

	trace, err := sim.Run()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(trace.Events), cfg.MaxSteps)
}

func TestRunSocialInfluenceConvergesOrStops(t *testing.T) {
	cfg := simconfig.DefaultConfig()
	cfg.SentencePoolSize = 4
	cfg.InitialPositionCount = 3
	cfg.InitialPositionSize = 2
	cfg.Seed = 5
	sim := New(cfg)

	trace, err := sim.RunSocialInfluence(20, 0.99, 0.8)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(trace.Events), 20)
}
