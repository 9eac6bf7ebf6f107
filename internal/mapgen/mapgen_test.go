package mapgen

import (
	"math/rand"
	"testing"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

func TestDefaultConfigWeightsSumToOne(t *testing.T) {
	cfg := DefaultConfig()
	var total float64
	for _, w := range cfg.PremiseCountWeights {
		total += w
	}
	if total < 0.99 || total > 1.01 {
		t.Errorf("PremiseCountWeights sums to %v, want ~1", total)
	}
}

func TestPropositionLevelsKeyStatementsAreLevelZero(t *testing.T) {
	pool := prop.NewPool()
	key := pool.Add("k")
	d := argument.Empty([]prop.Proposition{key})

	levels := propositionLevels(d, []prop.Proposition{key})
	if levels[key] != 0 {
		t.Errorf("propositionLevels()[key] = %d, want 0", levels[key])
	}
}

func TestPropositionLevelsPropagatesThroughPremises(t *testing.T) {
	pool := prop.NewPool()
	key, premise := pool.Add("k"), pool.Add("p")
	arg, err := argument.New([]prop.Literal{prop.Pos(premise)}, prop.Pos(key))
	if err != nil {
		t.Fatalf("argument.New returned unexpected error: %v", err)
	}
	d := argument.Empty([]prop.Proposition{key, premise}).Append(arg)

	levels := propositionLevels(d, []prop.Proposition{key})
	if levels[premise] != 1 {
		t.Errorf("propositionLevels()[premise] = %d, want 1 (one step from the key statement's conclusion)", levels[premise])
	}
}

func TestFullyConnectedDetectsUnreachableAtoms(t *testing.T) {
	pool := prop.NewPool()
	key, unreachable := pool.Add("k"), pool.Add("u")
	levels := map[prop.Proposition]int{key: 0}
	if fullyConnected(levels, []prop.Proposition{key, unreachable}) {
		t.Errorf("fullyConnected() = true despite %v having no assigned level", unreachable)
	}
	levels[unreachable] = 1
	if !fullyConnected(levels, []prop.Proposition{key, unreachable}) {
		t.Errorf("fullyConnected() = false once every atom has a level")
	}
}

func TestWeightedPremiseLengthStaysWithinDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := map[int]float64{2: 0.5, 3: 0.5}
	for i := 0; i < 20; i++ {
		l := weightedPremiseLength(rng, weights)
		if l != 2 && l != 3 {
			t.Fatalf("weightedPremiseLength() = %d, want 2 or 3", l)
		}
	}
}

func TestWeightedPremisesReturnsNilWhenNotEnoughCandidates(t *testing.T) {
	pool := prop.NewPool()
	a, b := pool.Add("a"), pool.Add("b")
	rng := rand.New(rand.NewSource(1))
	out := weightedPremises(rng, []prop.Proposition{a, b}, a, map[prop.Proposition]int{}, 0.75, 5)
	if out != nil {
		t.Errorf("weightedPremises() = %v, want nil when fewer candidates than requested length", out)
	}
}

func TestWeightedPremisesExcludesTheExcludedProposition(t *testing.T) {
	pool := prop.NewPool()
	a, b, c := pool.Add("a"), pool.Add("b"), pool.Add("c")
	rng := rand.New(rand.NewSource(1))
	out := weightedPremises(rng, []prop.Proposition{a, b, c}, a, map[prop.Proposition]int{}, 0.75, 2)
	if len(out) != 2 {
		t.Fatalf("weightedPremises() = %v, want 2 distinct propositions", out)
	}
	for _, p := range out {
		if p == a {
			t.Errorf("weightedPremises() included the excluded proposition %v", a)
		}
	}
}

func TestGenerateProducesASatisfiableDebate(t *testing.T) {
	engine := kernel.NewEngine(0)
	pool := prop.NewPool()
	cfg := DefaultConfig()
	cfg.N = 6
	cfg.KeyStatements = 2
	cfg.MaxArguments = 4
	cfg.MaxDensity = 0.9
	rng := rand.New(rand.NewSource(7))

	debate, err := Generate(engine, pool, cfg, rng)
	if err != nil {
		t.Fatalf("Generate returned unexpected error: %v", err)
	}
	sat, err := engine.IsSatisfiable(kernel.FromDebate(debate))
	if err != nil {
		t.Fatalf("IsSatisfiable returned unexpected error: %v", err)
	}
	if !sat {
		t.Errorf("Generate produced an unsatisfiable debate")
	}
	if debate.Len() > cfg.MaxArguments {
		t.Errorf("Generate committed %d arguments, want at most %d", debate.Len(), cfg.MaxArguments)
	}
}
