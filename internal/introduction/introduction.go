// Package introduction implements the argument-introduction engine of spec
// §4.4: picking a conclusion and premise set that satisfy a named strategy
// against two positions, with the retry and used-premises discipline of
// taupy's fetch_conclusion/select_premises. Failed premise draws are not
// remembered between retries, so a retry may draw the same set again.
package introduction

import (
	"errors"
	"math/rand"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
	"github.com/quanticsoul4772/dialectical-sim/internal/strategy"
)

// ErrStrategyExhausted is returned when no conclusion/premise combination
// satisfying a strategy could be found within the retry budget.
var ErrStrategyExhausted = errors.New("introduction: strategy exhausted its retry budget")

// Engine draws arguments from a proposition pool under a named strategy. An
// Engine is not safe for concurrent use; each simulation owns one (§5).
type Engine struct {
	rng             *rand.Rand
	usedPremiseKeys map[string]bool
}

// NewEngine builds an introduction engine seeded for deterministic replay.
func NewEngine(seed int64) *Engine {
	return &Engine{
		rng:             rand.New(rand.NewSource(seed)),
		usedPremiseKeys: make(map[string]bool),
	}
}

// accepts reports whether position p's entry for lit.Prop satisfies
// acceptance requirement a with respect to the candidate literal lit.
func accepts(p position.Position, lit prop.Literal, a strategy.Acceptance) bool {
	v, ok := p[lit.Prop]
	switch a {
	case strategy.Any:
		return true
	case strategy.Yes:
		return ok && v == !lit.Negated
	case strategy.No:
		return ok && v == lit.Negated
	case strategy.Toleration:
		return !ok || v != lit.Negated
	default:
		return false
	}
}

// FetchConclusion returns a literal over pool, excluding propositions in
// exclude, whose acceptance by source and target satisfies st.
func (e *Engine) FetchConclusion(pool []prop.Proposition, exclude map[prop.Proposition]bool, st strategy.Strategy, source, target position.Position) (prop.Literal, bool) {
	var candidates []prop.Literal
	for _, p := range pool {
		if exclude[p] {
			continue
		}
		for _, negated := range [2]bool{false, true} {
			lit := prop.Literal{Prop: p, Negated: negated}
			if !accepts(source, lit, st.SourceAcceptsConclusion) {
				continue
			}
			if !accepts(target, lit, st.TargetAcceptsConclusion) {
				continue
			}
			candidates = append(candidates, lit)
		}
	}
	if len(candidates) == 0 {
		return prop.Literal{}, false
	}
	return candidates[e.rng.Intn(len(candidates))], true
}

// AcceptedLiterals returns the literals a position actually commits to, the
// candidate premise pool a strategy draws from when PickPremisesFrom selects
// that position (taupy's select_premises).
func AcceptedLiterals(p position.Position) []prop.Literal {
	out := make([]prop.Literal, 0, len(p))
	for prp, v := range p {
		out = append(out, prop.Literal{Prop: prp, Negated: !v})
	}
	return out
}

// generalLiteralPool returns both polarities of every proposition in atoms,
// the candidate premise pool for strategies whose PickPremisesFrom is
// NoSource (taupy's pick_premises_from: None draws from the debate's
// general premisepool rather than a position's commitments).
func generalLiteralPool(atoms []prop.Proposition) []prop.Literal {
	out := make([]prop.Literal, 0, 2*len(atoms))
	for _, a := range atoms {
		out = append(out, prop.Literal{Prop: a, Negated: false}, prop.Literal{Prop: a, Negated: true})
	}
	return out
}

// FetchPremises draws a random combination of length literals from
// candidatePool, excluding reservedConclusion (and retrying on any
// combination that reuses a proposition, which would otherwise risk
// asserting a proposition under both polarities within one argument),
// bounded by maxTries attempts.
func (e *Engine) FetchPremises(candidatePool []prop.Literal, length int, reservedConclusion prop.Proposition, maxTries int) ([]prop.Literal, bool) {
	if length <= 0 || length > len(candidatePool) {
		return nil, false
	}
	for try := 0; try < maxTries; try++ {
		idxs := e.rng.Perm(len(candidatePool))[:length]
		combo := make([]prop.Literal, 0, length)
		seen := make(map[prop.Proposition]bool, length)
		valid := true
		for _, idx := range idxs {
			lit := candidatePool[idx]
			if lit.Prop == reservedConclusion || seen[lit.Prop] {
				valid = false
				break
			}
			seen[lit.Prop] = true
			combo = append(combo, lit)
		}
		if valid {
			return combo, true
		}
	}
	return nil, false
}

// IsPremiseSetUsed reports whether a's premise key has already been
// consumed by a prior argument, regardless of that argument's conclusion
// (§9 open question 3: intentionally also rejects reused premise sets under
// a different conclusion).
func (e *Engine) IsPremiseSetUsed(a *argument.Argument) bool {
	return e.usedPremiseKeys[a.PremiseKey()]
}

// MarkUsed records a's premise key as consumed.
func (e *Engine) MarkUsed(a *argument.Argument) {
	e.usedPremiseKeys[a.PremiseKey()] = true
}

// Options configures one Introduce call.
type Options struct {
	Strategy           strategy.Strategy
	Pool               []prop.Proposition
	ExcludeConclusions map[prop.Proposition]bool
	Source             position.Position
	Target             position.Position
	PremiseLength      int
	MaxConclusionTries int
	MaxPremiseTries    int
}

// Introduce builds one new Argument satisfying opts.Strategy against the
// source and target positions, respecting the used-premises discipline. It
// retries conclusion selection until a premise set is found whose key has
// not already been used, up to MaxConclusionTries times.
func (e *Engine) Introduce(opts Options) (*argument.Argument, error) {
	exclude := opts.ExcludeConclusions
	if exclude == nil {
		exclude = map[prop.Proposition]bool{}
	}
	for try := 0; try < opts.MaxConclusionTries; try++ {
		conclusion, ok := e.FetchConclusion(opts.Pool, exclude, opts.Strategy, opts.Source, opts.Target)
		if !ok {
			return nil, ErrStrategyExhausted
		}

		var pool []prop.Literal
		switch opts.Strategy.PickPremisesFrom {
		case strategy.FromTarget:
			pool = AcceptedLiterals(opts.Target)
		case strategy.FromSource:
			pool = AcceptedLiterals(opts.Source)
		default:
			pool = generalLiteralPool(opts.Pool)
		}

		premises, ok := e.FetchPremises(pool, opts.PremiseLength, conclusion.Prop, opts.MaxPremiseTries)
		if !ok {
			continue
		}
		arg, err := argument.New(premises, conclusion)
		if err != nil {
			continue
		}
		if e.IsPremiseSetUsed(arg) {
			continue
		}
		e.MarkUsed(arg)
		return arg, nil
	}
	return nil, ErrStrategyExhausted
}
