package simulation

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/mapgen"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
	"github.com/quanticsoul4772/dialectical-sim/internal/revision"
	"github.com/quanticsoul4772/dialectical-sim/internal/simconfig"
)

// FixedDebateSimulation holds the debate fixed (built once by the
// hierarchical argument-map generator) and evolves only the positions, by
// "uncovering" arguments one at a time: an argument is eligible for a
// position once the position already asserts all of the argument's
// premises but not yet its conclusion (taupy's FixedDebateSimulation).
type FixedDebateSimulation struct {
	cfg       simconfig.Config
	debate    *argument.Debate
	positions []position.Position
	engine    *kernel.Engine
	rng       *rand.Rand
	trace     *Trace
}

// NewFixedDebate generates the debate once via internal/mapgen and seeds
// the initial positions.
func NewFixedDebate(cfg simconfig.Config, engine *kernel.Engine, pool *prop.Pool, rng *rand.Rand) (*FixedDebateSimulation, error) {
	mcfg := mapgen.DefaultConfig()
	mcfg.N = cfg.SentencePoolSize
	mcfg.KeyStatements = cfg.KeyStatementCount
	mcfg.MaxDensity = cfg.MaxDensity

	debate, err := mapgen.Generate(engine, pool, mcfg, rng)
	if err != nil {
		return nil, fmt.Errorf("simulation: generating fixed debate: %w", err)
	}

	return &FixedDebateSimulation{
		cfg:       cfg,
		debate:    debate,
		positions: initPositions(rng, debate.Atoms(), cfg.InitialPositionCount, cfg.InitialPositionSize),
		engine:    engine,
		rng:       rng,
		trace:     NewTrace(),
	}, nil
}

type eligiblePair struct {
	positionIdx int
	argumentIdx int
}

func (s *FixedDebateSimulation) eligiblePairs() []eligiblePair {
	args := s.debate.Arguments()
	var out []eligiblePair
	for pi, p := range s.positions {
		for ai, a := range args {
			if _, already := p[a.Conclusion.Prop]; already {
				continue
			}
			if position.ArgumentApplies(p, a) {
				out = append(out, eligiblePair{positionIdx: pi, argumentIdx: ai})
			}
		}
	}
	return out
}

// Step performs one uncovering event. With uncoverMode "any" it picks a
// uniformly random eligible (position, argument) pair; with "max" it picks
// the argument eligible for the most positions (ties broken at random), and
// applies it to one randomly chosen eligible position.
func (s *FixedDebateSimulation) Step() (bool, error) {
	pairs := s.eligiblePairs()
	if len(pairs) == 0 {
		return false, nil
	}

	var chosen eligiblePair
	if s.cfg.UncoverMode == simconfig.UncoverMax {
		counts := make(map[int][]eligiblePair)
		for _, pr := range pairs {
			counts[pr.argumentIdx] = append(counts[pr.argumentIdx], pr)
		}
		best := -1
		var bestGroup []eligiblePair
		for arg, group := range counts {
			if len(group) > best {
				best = len(group)
				bestGroup = group
				_ = arg
			}
		}
		chosen = bestGroup[s.rng.Intn(len(bestGroup))]
	} else {
		chosen = pairs[s.rng.Intn(len(pairs))]
	}

	args := s.debate.Arguments()
	arg := args[chosen.argumentIdx]
	p := s.positions[chosen.positionIdx].Clone()
	p[arg.Conclusion.Prop] = !arg.Conclusion.Negated

	closed, err := position.Close(s.debate, p)
	if errors.Is(err, position.ErrIncoherentClosure) {
		closed = p
	} else if err != nil {
		return false, fmt.Errorf("simulation: fixed-debate closing position: %w", err)
	}
	coherent, err := position.Coherent(s.engine, s.debate, closed)
	if err != nil {
		return false, fmt.Errorf("simulation: fixed-debate coherence check: %w", err)
	}
	if coherent {
		s.positions[chosen.positionIdx] = closed
	} else {
		revised, err := revision.ClosestCoherent(s.engine, s.debate, closed, s.rng)
		if err != nil {
			return false, fmt.Errorf("simulation: fixed-debate revision: %w", err)
		}
		s.positions[chosen.positionIdx] = revised
	}
	return true, nil
}

// Run uncovers arguments until none remain eligible, the SCCP floor is
// reached, or maxSteps is hit. The debate never changes, so its model count
// is computed once before the loop; the density ceiling is not checked here.
func (s *FixedDebateSimulation) Run(maxSteps int) (*Trace, error) {
	count, err := s.engine.ModelCount(kernel.FromDebate(s.debate))
	if err != nil {
		return nil, fmt.Errorf("simulation: fixed-debate model count: %w", err)
	}
	for step := 0; step < maxSteps; step++ {
		if int(count) <= s.cfg.MinSCCP {
			break
		}
		progressed, err := s.Step()
		if err != nil {
			return nil, err
		}
		if !progressed {
			log.Printf("simulation %s: fixed-debate run exhausted uncoverable arguments at step %d", s.trace.RunID, step)
			break
		}
		s.trace.Append(Event{Step: step, Kind: simconfig.EventIntroduction, Positions: clonePositions(s.positions)})
	}
	return s.trace, nil
}
