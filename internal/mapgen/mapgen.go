// Package mapgen implements the hierarchical argument-map generator of spec
// §4.6, grounded on taupy/generators/maps.py's
// generate_hierarchical_argument_map: key statements seed level 0, every
// new argument's conclusion is drawn with probability weighted by β raised
// to its level (favoring statements close to the key statements) and its
// premises are drawn with probability weighted by γ raised to their
// current usage count (favoring less-used propositions, per Betz 2009's
// free-premises idea of not overloading a handful of propositions).
package mapgen

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Config is the closed configuration record for one generation run (spec
// §6: closed enumerations, no dynamic attribute lookup).
type Config struct {
	N                   int             // total propositions in the pool
	KeyStatements       int             // number of level-0 propositions
	MaxArguments        int             // hard cap on committed arguments
	MaxDensity          float64         // stop once density reaches this
	PremiseCountWeights map[int]float64 // distribution over premise-set sizes
	Beta                float64         // conclusion weighting base
	Gamma               float64         // premise usage weighting base
	MaxAttemptsPerStep  int             // retries before giving up a step
}

// DefaultConfig matches taupy's generate_hierarchical_argument_map defaults.
func DefaultConfig() Config {
	return Config{
		N:             20,
		KeyStatements: 3,
		MaxArguments:  math.MaxInt32,
		MaxDensity:    1.0,
		PremiseCountWeights: map[int]float64{
			2: 0.19,
			3: 0.23,
			4: 0.32,
			5: 0.26,
		},
		Beta:               0.75,
		Gamma:              0.75,
		MaxAttemptsPerStep: 50,
	}
}

// Generate builds a debate by repeatedly drawing and committing arguments
// until cfg.MaxArguments or cfg.MaxDensity is reached, or until one step
// fails to commit an argument within cfg.MaxAttemptsPerStep attempts.
func Generate(engine *kernel.Engine, pool *prop.Pool, cfg Config, rng *rand.Rand) (*argument.Debate, error) {
	atoms := make([]prop.Proposition, cfg.N)
	for i := 0; i < cfg.N; i++ {
		atoms[i] = pool.Add(fmt.Sprintf("p%d", i))
	}
	keyStatements := atoms[:cfg.KeyStatements]

	debate := argument.Empty(atoms)
	usage := make(map[prop.Proposition]int)

	for len(debate.Arguments()) < cfg.MaxArguments {
		levels := propositionLevels(debate, keyStatements)

		length := weightedPremiseLength(rng, cfg.PremiseCountWeights)

		var committed bool
		for attempt := 0; attempt < cfg.MaxAttemptsPerStep; attempt++ {
			conclusionProp := weightedByLevel(rng, atoms, levels, cfg.Beta)
			premises := weightedPremises(rng, atoms, conclusionProp, usage, cfg.Gamma, length)
			if premises == nil {
				continue
			}
			lits := make([]prop.Literal, len(premises))
			for i, p := range premises {
				lits[i] = prop.Literal{Prop: p, Negated: rng.Intn(2) == 0}
			}
			conclusion := prop.Literal{Prop: conclusionProp, Negated: rng.Intn(2) == 0}

			arg, err := argument.New(lits, conclusion)
			if err != nil {
				continue
			}
			candidate := debate.Append(arg)
			f := kernel.FromDebate(candidate)
			sat, err := engine.IsSatisfiable(f)
			if err != nil {
				return nil, fmt.Errorf("mapgen: checking candidate argument: %w", err)
			}
			if !sat {
				continue
			}
			debate = candidate
			for _, p := range premises {
				usage[p]++
			}
			committed = true
			break
		}
		if !committed {
			break
		}

		d, err := density(engine, debate)
		if err != nil {
			return nil, err
		}
		if d >= cfg.MaxDensity {
			break
		}
	}

	if !fullyConnected(propositionLevels(debate, keyStatements), atoms) {
		log.Printf("mapgen: generated map leaves some propositions unreachable from the key statements")
	}

	return debate, nil
}

func density(engine *kernel.Engine, d *argument.Debate) (float64, error) {
	atoms := d.Atoms()
	if len(atoms) == 0 {
		return 0, nil
	}
	f := kernel.FromDebate(d)
	count, err := engine.ModelCount(f)
	if err != nil {
		return 0, fmt.Errorf("mapgen: model count: %w", err)
	}
	if count == 0 {
		return 1, nil
	}
	return (float64(len(atoms)) - math.Log2(float64(count))) / float64(len(atoms)), nil
}

// propositionLevels assigns key statements level 0, and every proposition
// that appears as a premise of an argument whose conclusion is at level i
// the level i+1, propagated to a fixpoint (taupy's
// proposition_levels_from_debate).
func propositionLevels(d *argument.Debate, keyStatements []prop.Proposition) map[prop.Proposition]int {
	levels := make(map[prop.Proposition]int)
	for _, k := range keyStatements {
		levels[k] = 0
	}
	for changed := true; changed; {
		changed = false
		for _, a := range d.Arguments() {
			lvl, ok := levels[a.Conclusion.Prop]
			if !ok {
				continue
			}
			for _, premise := range a.Premises {
				if cur, ok := levels[premise.Prop]; !ok || cur > lvl+1 {
					levels[premise.Prop] = lvl + 1
					changed = true
				}
			}
		}
	}
	return levels
}

func fullyConnected(levels map[prop.Proposition]int, atoms []prop.Proposition) bool {
	for _, a := range atoms {
		if _, ok := levels[a]; !ok {
			return false
		}
	}
	return true
}

func weightedPremiseLength(rng *rand.Rand, weights map[int]float64) int {
	lengths := make([]int, 0, len(weights))
	var total float64
	for l, w := range weights {
		lengths = append(lengths, l)
		total += w
	}
	r := rng.Float64() * total
	for _, l := range lengths {
		r -= weights[l]
		if r <= 0 {
			return l
		}
	}
	return lengths[len(lengths)-1]
}

// weightedByLevel picks a proposition with probability proportional to
// beta^level, where propositions with no assigned level are treated as
// maximally deep (favoring the key statements and their closest premises).
func weightedByLevel(rng *rand.Rand, atoms []prop.Proposition, levels map[prop.Proposition]int, beta float64) prop.Proposition {
	weights := make([]float64, len(atoms))
	var total float64
	maxLevel := 0
	for _, lvl := range levels {
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	for i, a := range atoms {
		lvl, ok := levels[a]
		if !ok {
			lvl = maxLevel + 1
		}
		w := math.Pow(beta, float64(lvl))
		weights[i] = w
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return atoms[i]
		}
	}
	return atoms[len(atoms)-1]
}

// weightedPremises draws `length` distinct propositions other than exclude,
// with probability proportional to gamma^usage (favoring less-used
// propositions), without replacement.
func weightedPremises(rng *rand.Rand, atoms []prop.Proposition, exclude prop.Proposition, usage map[prop.Proposition]int, gamma float64, length int) []prop.Proposition {
	candidates := make([]prop.Proposition, 0, len(atoms))
	weights := make([]float64, 0, len(atoms))
	for _, a := range atoms {
		if a == exclude {
			continue
		}
		candidates = append(candidates, a)
		weights = append(weights, math.Pow(gamma, float64(usage[a])))
	}
	if length > len(candidates) {
		return nil
	}
	out := make([]prop.Proposition, 0, length)
	for len(out) < length {
		var total float64
		for _, w := range weights {
			total += w
		}
		if total <= 0 {
			return nil
		}
		r := rng.Float64() * total
		pick := -1
		for i, w := range weights {
			r -= w
			if r <= 0 {
				pick = i
				break
			}
		}
		if pick == -1 {
			pick = len(weights) - 1
		}
		out = append(out, candidates[pick])
		candidates = append(candidates[:pick], candidates[pick+1:]...)
		weights = append(weights[:pick], weights[pick+1:]...)
	}
	return out
}
