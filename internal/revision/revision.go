// Package revision implements the three belief-revision strategies of spec
// §4.5: random-refit, closest-coherent, and closest-closed-partial-coherent.
package revision

import (
	"fmt"
	"math/rand"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/distance"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
)

// RandomRefit discards the position's current commitments entirely and
// adopts a uniformly random coherent complete position of d, via reservoir
// sampling over the lazy model enumeration (so the whole SCCP is never
// materialized just to pick one member).
func RandomRefit(engine *kernel.Engine, d *argument.Debate, rng *rand.Rand) (position.Position, error) {
	f := kernel.FromDebate(d)
	it, err := engine.Enumerate(f, d.Atoms())
	if err != nil {
		return nil, fmt.Errorf("revision: enumerate models: %w", err)
	}
	var chosen position.Position
	seen := 0
	for {
		m, ok, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("revision: enumerate models: %w", err)
		}
		if !ok {
			break
		}
		seen++
		if seen == 1 || rng.Intn(seen) == 0 {
			chosen = position.Position(m)
		}
	}
	if seen == 0 {
		return nil, ErrIncoherentInput
	}
	return chosen, nil
}

// ClosestCoherent returns the coherent complete position(s) of d at minimal
// Hamming distance from target, breaking ties uniformly at random (§4.5b).
// Like RandomRefit, it streams the lazy model enumeration rather than
// building the full SCCP graph.
func ClosestCoherent(engine *kernel.Engine, d *argument.Debate, target position.Position, rng *rand.Rand) (position.Position, error) {
	atoms := d.Atoms()
	f := kernel.FromDebate(d)
	it, err := engine.Enumerate(f, atoms)
	if err != nil {
		return nil, fmt.Errorf("revision: enumerate models: %w", err)
	}
	best := -1
	var chosen position.Position
	tieCount := 0
	for {
		m, ok, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("revision: enumerate models: %w", err)
		}
		if !ok {
			break
		}
		p := position.Position(m)
		dist := distance.Hamming(p, target, atoms)
		switch {
		case best == -1 || dist < best:
			best = dist
			chosen = p
			tieCount = 1
		case dist == best:
			tieCount++
			if rng.Intn(tieCount) == 0 {
				chosen = p
			}
		}
	}
	if best == -1 {
		return nil, ErrIncoherentInput
	}
	return chosen, nil
}

// ClosestClosedPartialCoherentOptions configures the MaxSAT neighbour
// search of §4.5c.
type ClosestClosedPartialCoherentOptions struct {
	MaxRadius int // upper bound on switch-deletion search radius
}

// ClosestClosedPartialCoherent searches the switch-deletion neighbourhood of
// p, radius by radius, for the closed partial position (under the revised
// debate d) that agrees with the most entries of p, using partial MaxSAT to
// score each radius's best achievable agreement (§4.5c: "ask the solver for
// all models of D′ that agree with at least k of p's entries", applied as
// an iterative k-sweep across growing radius).
func ClosestClosedPartialCoherent(engine *kernel.Engine, d *argument.Debate, p position.Position, opts ClosestClosedPartialCoherentOptions) (position.Position, error) {
	f := kernel.FromDebate(d)
	softLiterals := p.Literals()

	bestAgreement := -1
	var bestPosition position.Position

	for radius := 0; radius <= opts.MaxRadius; radius++ {
		candidates := distance.SwitchDeletionNeighbours(p, radius)
		candidates = append(candidates, p.Clone())

		for _, cand := range candidates {
			closed, err := position.Close(d, cand)
			if err != nil {
				// Forward-chaining forces a contradiction: this candidate
				// can never be closed coherently, so it's no better than
				// an incoherent one and is simply skipped.
				continue
			}
			sat, err := position.Coherent(engine, d, closed)
			if err != nil {
				return nil, fmt.Errorf("revision: coherence check: %w", err)
			}
			if !sat {
				continue
			}
			hardUnits := closed.Literals()
			agreement, model, err := maxAgreement(f, hardUnits, softLiterals)
			if err != nil {
				return nil, fmt.Errorf("revision: maxsat: %w", err)
			}
			if agreement > bestAgreement {
				bestAgreement = agreement
				bestPosition = position.Position(model)
			}
		}
		if bestAgreement >= 0 {
			return bestPosition, nil
		}
	}
	return nil, ErrSearchRadiusExhausted
}
