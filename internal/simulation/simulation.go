// Package simulation implements the simulation driver of spec §4.7: the
// weighted event loop, the introduction/new-sentence events, and the
// fixed-debate and social-influence variants. Grounded on taupy's
// Simulation/FixedDebateSimulation/SocialInfluenceSimulation classes.
package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/distance"
	"github.com/quanticsoul4772/dialectical-sim/internal/introduction"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/revision"
	"github.com/quanticsoul4772/dialectical-sim/internal/simconfig"
	"github.com/quanticsoul4772/dialectical-sim/internal/strategy"

	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Simulation owns one run's debate, positions, and engines. It is not safe
// for concurrent use: §5 confines each worker to its own simulation object.
type Simulation struct {
	cfg       simconfig.Config
	pool      *prop.Pool
	debate    *argument.Debate
	positions []position.Position
	engine    *kernel.Engine
	intro     *introduction.Engine
	rng       *rand.Rand
	trace     *Trace
}

// New builds a simulation ready to Run under cfg.
func New(cfg simconfig.Config) *Simulation {
	pool := prop.NewPool()
	atoms := make([]prop.Proposition, cfg.SentencePoolSize)
	for i := range atoms {
		atoms[i] = pool.Add(fmt.Sprintf("p%d", i))
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Simulation{
		cfg:       cfg,
		pool:      pool,
		debate:    argument.Empty(atoms),
		positions: initPositions(rng, atoms, cfg.InitialPositionCount, cfg.InitialPositionSize),
		engine:    kernel.NewEngine(0),
		intro:     introduction.NewEngine(cfg.Seed),
		rng:       rng,
		trace:     NewTrace(),
	}
}

func initPositions(rng *rand.Rand, atoms []prop.Proposition, count, size int) []position.Position {
	out := make([]position.Position, count)
	for i := range out {
		p := position.New()
		perm := rng.Perm(len(atoms))
		for j := 0; j < size && j < len(atoms); j++ {
			p[atoms[perm[j]]] = rng.Intn(2) == 0
		}
		out[i] = p
	}
	return out
}

func clonePositions(ps []position.Position) []position.Position {
	out := make([]position.Position, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// Debate returns the current debate stage.
func (s *Simulation) Debate() *argument.Debate { return s.debate }

// Positions returns the current population.
func (s *Simulation) Positions() []position.Position { return clonePositions(s.positions) }

func (s *Simulation) density() (float64, error) {
	atoms := s.debate.Atoms()
	if len(atoms) == 0 {
		return 0, nil
	}
	count, err := s.engine.ModelCount(kernel.FromDebate(s.debate))
	if err != nil {
		return 0, fmt.Errorf("simulation: density: %w", err)
	}
	if count == 0 {
		return 1, nil
	}
	return (float64(len(atoms)) - math.Log2(float64(count))) / float64(len(atoms)), nil
}

func (s *Simulation) sccpSize() (int, error) {
	count, err := s.engine.ModelCount(kernel.FromDebate(s.debate))
	if err != nil {
		return 0, fmt.Errorf("simulation: sccp size: %w", err)
	}
	return int(count), nil
}

// Run drives the standard variant's event loop to one of the termination
// conditions of §4.7: density ceiling, SCCP floor, step cap, or
// introduction-strategy exhaustion.
func (s *Simulation) Run() (*Trace, error) {
	for step := 0; step < s.cfg.MaxSteps; step++ {
		d, err := s.density()
		if err != nil {
			return nil, err
		}
		sccpSize, err := s.sccpSize()
		if err != nil {
			return nil, err
		}
		if d >= s.cfg.MaxDensity || sccpSize <= s.cfg.MinSCCP {
			log.Printf("simulation %s: terminating at step %d (density=%.3f, sccp=%d)", s.trace.RunID, step, d, sccpSize)
			break
		}

		kind := s.pickEvent()
		switch kind {
		case simconfig.EventIntroduction:
			if err := s.stepIntroduction(); err != nil {
				if errors.Is(err, introduction.ErrStrategyExhausted) {
					log.Printf("simulation %s: introduction strategy exhausted at step %d, stopping", s.trace.RunID, step)
					return s.trace, nil
				}
				return nil, err
			}
		case simconfig.EventNewSentence:
			s.stepNewSentence()
		}

		s.trace.Append(Event{
			Step:      step,
			Kind:      kind,
			Density:   d,
			SCCPSize:  sccpSize,
			Positions: clonePositions(s.positions),
		})
	}
	return s.trace, nil
}

func (s *Simulation) pickEvent() simconfig.EventKind {
	kinds := [2]simconfig.EventKind{simconfig.EventIntroduction, simconfig.EventNewSentence}
	var total float64
	for _, k := range kinds {
		total += s.cfg.EventWeights[k]
	}
	r := s.rng.Float64() * total
	for _, k := range kinds {
		r -= s.cfg.EventWeights[k]
		if r <= 0 {
			return k
		}
	}
	return simconfig.EventIntroduction
}

func (s *Simulation) pickStrategy() strategy.Strategy {
	named := strategy.Named()
	if st, ok := named[s.cfg.IntroductionStrategy]; ok {
		return st
	}
	return strategy.Random
}

// stepIntroduction picks two positions (directed: distinct source/target
// after up to len(positions)/2 retries; undirected or a singleton
// population: one position plays both roles; an empty population (§8 S1)
// leaves both as the empty position, which only the random strategy — the
// only one that doesn't examine either position — can satisfy), introduces
// an argument under the configured strategy, and — if the resulting debate
// is satisfiable — commits it and closes every position against the new
// debate.
func (s *Simulation) stepIntroduction() error {
	source, target := position.New(), position.New()
	switch {
	case len(s.positions) == 0:
		// No positions to draw from; random's NoSource premise pool is the
		// only combination that can still produce an argument.
	case s.cfg.Directed && len(s.positions) >= 2:
		retries := len(s.positions) / 2
		if retries < 1 {
			retries = 1
		}
		found := false
		var sourceIdx, targetIdx int
		for i := 0; i < retries; i++ {
			sourceIdx = s.rng.Intn(len(s.positions))
			targetIdx = s.rng.Intn(len(s.positions))
			if sourceIdx != targetIdx {
				found = true
				break
			}
		}
		if !found {
			return introduction.ErrStrategyExhausted
		}
		source, target = s.positions[sourceIdx], s.positions[targetIdx]
	default:
		idx := s.rng.Intn(len(s.positions))
		source, target = s.positions[idx], s.positions[idx]
	}

	st := s.pickStrategy()
	arg, err := s.intro.Introduce(introduction.Options{
		Strategy:           st,
		Pool:               s.debate.Atoms(),
		Source:             source,
		Target:             target,
		PremiseLength:      s.cfg.ArgumentLength,
		MaxConclusionTries: 50,
		MaxPremiseTries:    50,
	})
	if err != nil {
		return err
	}

	candidate := s.debate.Append(arg)
	sat, err := s.engine.IsSatisfiable(kernel.FromDebate(candidate))
	if err != nil {
		return fmt.Errorf("simulation: checking new argument: %w", err)
	}
	if !sat {
		// taupy's update.introduce: an unsatisfiable candidate is discarded,
		// the debate stays unchanged, and the step still counts.
		return nil
	}
	s.debate = candidate
	return s.respond()
}

// respond closes every position against the new debate stage and revises
// any that become incoherent (§4.5).
func (s *Simulation) respond() error {
	for i, p := range s.positions {
		closed, err := position.Close(s.debate, p)
		if errors.Is(err, position.ErrIncoherentClosure) {
			// Forward-chaining itself hit a contradiction; revise from the
			// pre-closure commitments instead of an unusable closed value.
			closed = p
		} else if err != nil {
			return fmt.Errorf("simulation: closing position: %w", err)
		}
		coherent, err := position.Coherent(s.engine, s.debate, closed)
		if err != nil {
			return fmt.Errorf("simulation: coherence check: %w", err)
		}
		if coherent {
			s.positions[i] = closed
			continue
		}
		revised, err := s.revise(closed)
		if err != nil {
			return fmt.Errorf("simulation: revision: %w", err)
		}
		s.positions[i] = revised
	}
	return nil
}

func (s *Simulation) revise(p position.Position) (position.Position, error) {
	switch s.cfg.DefaultRevisionStrategy {
	case simconfig.RevisionRandomRefit:
		return revision.RandomRefit(s.engine, s.debate, s.rng)
	case simconfig.RevisionClosestClosedPartialCoherent:
		return revision.ClosestClosedPartialCoherent(s.engine, s.debate, p, revision.ClosestClosedPartialCoherentOptions{
			MaxRadius: s.cfg.PartialSearchRadius,
		})
	default:
		return revision.ClosestCoherent(s.engine, s.debate, p, s.rng)
	}
}

// stepNewSentence grows the atom pool by one proposition (if under the
// configured ceiling) and gives each position a 2:1 chance of committing to
// a random polarity for it over suspending it (taupy's Simulation.run
// "new_sentence" branch).
func (s *Simulation) stepNewSentence() {
	if s.pool.Len() >= s.cfg.MaxSentencePoolSize {
		return
	}
	name := fmt.Sprintf("p%d", s.pool.Len())
	next := s.pool.Add(name)
	s.debate = s.debate.WithExpandedPool(next)
	for i, p := range s.positions {
		cp := p.Clone()
		if s.rng.Intn(3) < 2 {
			cp[next] = s.rng.Intn(2) == 0
		}
		s.positions[i] = cp
	}
}

// AdoptEditDistanceWeightedInfluence performs one step of the
// social-influence variant: pick a random source position and a random
// proposition it has an opinion on, then for every other position flip a
// coin — weighted by its normalised edit distance from the source — on
// whether to drop its own entry (if any) and adopt the source's (§4.7,
// taupy's SocialInfluenceSimulation.step).
func (s *Simulation) AdoptEditDistanceWeightedInfluence(influenceParameter float64) {
	if len(s.positions) < 2 {
		return
	}
	atoms := s.debate.Atoms()
	sourceIdx := s.rng.Intn(len(s.positions))
	source := s.positions[sourceIdx]
	if len(source) == 0 {
		return
	}
	items := make([]prop.Proposition, 0, len(source))
	for p := range source {
		items = append(items, p)
	}
	item := items[s.rng.Intn(len(items))]
	sourceValue := source[item]

	for i, p := range s.positions {
		if i == sourceIdx {
			continue
		}
		d := distance.NormalisedEditDistance(p, source, atoms)
		adopt := d*influenceParameter > s.rng.Float64()
		if !adopt {
			continue
		}
		cp := p.Clone()
		cp[item] = sourceValue
		s.positions[i] = cp
	}
}

// MeanPairwiseAgreement returns the mean fraction of atoms on which every
// pair of positions agrees, the quantity the social-influence variant's
// termination condition compares against max_agreement.
func MeanPairwiseAgreement(positions []position.Position, atoms []prop.Proposition) float64 {
	n := len(positions)
	if n < 2 || len(atoms) == 0 {
		return 1
	}
	var sum float64
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := distance.Hamming(positions[i], positions[j], atoms)
			sum += 1 - float64(d)/float64(len(atoms))
			pairs++
		}
	}
	if pairs == 0 {
		return 1
	}
	return sum / float64(pairs)
}

// RunSocialInfluence drives the social-influence variant to its own
// termination condition: mean pairwise agreement exceeding maxAgreement, or
// maxSteps reached (taupy's SocialInfluenceSimulation.run).
func (s *Simulation) RunSocialInfluence(maxSteps int, maxAgreement, influenceParameter float64) (*Trace, error) {
	atoms := s.debate.Atoms()
	for step := 0; step < maxSteps; step++ {
		agreement := MeanPairwiseAgreement(s.positions, atoms)
		if agreement > maxAgreement {
			log.Printf("simulation %s: social influence converged at step %d (agreement=%.3f)", s.trace.RunID, step, agreement)
			break
		}
		s.AdoptEditDistanceWeightedInfluence(influenceParameter)
		s.trace.Append(Event{
			Step:      step,
			Kind:      simconfig.EventIntroduction,
			Positions: clonePositions(s.positions),
		})
	}
	return s.trace, nil
}
