// Package position implements the position algebra of spec §4.2: coherent,
// complete, closed, close, inverse, and compatible, over partial truth
// assignments. Grounded on taupy/basic/positions.py's Position class.
package position

import (
	"errors"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// ErrIncoherentClosure is returned by Close when forward-chaining the
// debate's arguments forces some proposition to both truth values — the
// candidate position can never be made coherent, regardless of how many
// more rounds are run (§4.2, §9 open question 2).
var ErrIncoherentClosure = errors.New("position: forward chaining forces a proposition to both truth values")

// Position is a partial truth assignment over propositions. A proposition
// absent from the map is suspended (neither accepted nor rejected).
type Position map[prop.Proposition]bool

// New returns the empty position: every proposition suspended.
func New() Position {
	return Position{}
}

// Clone returns an independent copy.
func (p Position) Clone() Position {
	out := make(Position, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Literals returns the position's commitments as literals, in no particular
// order; suspended propositions contribute nothing.
func (p Position) Literals() []prop.Literal {
	out := make([]prop.Literal, 0, len(p))
	for prp, v := range p {
		out = append(out, prop.Literal{Prop: prp, Negated: !v})
	}
	return out
}

// Complete reports whether every atom of the given set is assigned.
func (p Position) Complete(atoms []prop.Proposition) bool {
	for _, a := range atoms {
		if _, ok := p[a]; !ok {
			return false
		}
	}
	return true
}

// Equal reports whether two positions hold the same commitments.
func (p Position) Equal(other Position) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		if v2, ok := other[k]; !ok || v2 != v {
			return false
		}
	}
	return true
}

// Inverse flips every asserted commitment; suspended propositions stay
// suspended (taupy's Position.inverse only touches keys present in the dict).
func (p Position) Inverse() Position {
	out := make(Position, len(p))
	for k, v := range p {
		out[k] = !v
	}
	return out
}

// Coherent reports whether the position's commitments are jointly
// satisfiable together with the debate (§4.2 coherent?).
func Coherent(engine *kernel.Engine, d *argument.Debate, p Position) (bool, error) {
	f := kernel.FromDebate(d)
	return engine.CountUnder(f, p.Literals())
}

// Compatible is the shallow compatibility check: two positions are
// compatible unless they disagree on some proposition both have committed
// to (taupy's position_compatibility(deep=False)).
func Compatible(a, b Position) bool {
	smaller, larger := a, b
	if len(b) < len(a) {
		smaller, larger = b, a
	}
	for k, v := range smaller {
		if v2, ok := larger[k]; ok && v2 != v {
			return false
		}
	}
	return true
}

// Merge combines two compatible positions into one holding both sets of
// commitments. Callers should check Compatible first; where they disagree,
// b's commitment wins.
func (p Position) Merge(b Position) Position {
	out := p.Clone()
	for k, v := range b {
		out[k] = v
	}
	return out
}

// CompatibleDeep is the expensive compatibility check: beyond shallow
// agreement, the merged commitments must be jointly satisfiable with the
// debate (taupy's position_compatibility(deep=True)). It is exported, and no
// other package of this module calls it.
func CompatibleDeep(engine *kernel.Engine, d *argument.Debate, a, b Position) (bool, error) {
	if !Compatible(a, b) {
		return false, nil
	}
	merged := a.Merge(b)
	return Coherent(engine, d, merged)
}

// Close extends p by forward-chaining every argument of the debate to a
// fixpoint: whenever an argument's premises are already asserted in the
// result, its conclusion is asserted too, repeating until nothing changes
// (taupy's closedness/deterministic-closing algorithm). A single-argument
// first debate stage is handled identically, since a one-argument Debate is
// already the conjunction-of-one-clause case.
//
// Close makes no satisfiability query. It adds only conclusions reached by
// applying arguments forward; a literal that p and the debate entail in any
// other way (for example, ¬a from a ⇒ b and ¬b) stays suspended.
//
// The loop runs at most len(d.Atoms())+1 rounds (§4.2: "at most |atoms(D)|
// rounds"), since each round short of the fixpoint must newly assert at
// least one previously-suspended atom. If forward-chaining ever demands two
// different truth values for the same proposition, the candidate can never
// be closed coherently and Close reports ErrIncoherentClosure instead of
// looping forever.
func Close(d *argument.Debate, p Position) (Position, error) {
	out := p.Clone()
	maxRounds := len(d.Atoms()) + 1
	for round := 0; round < maxRounds; round++ {
		changed := false
		for _, a := range d.Arguments() {
			if !satisfiesPremises(out, a) {
				continue
			}
			want := !a.Conclusion.Negated
			cur, ok := out[a.Conclusion.Prop]
			if ok && cur != want {
				return nil, ErrIncoherentClosure
			}
			if !ok {
				out[a.Conclusion.Prop] = want
				changed = true
			}
		}
		if !changed {
			return out, nil
		}
	}
	return out, nil
}

// ArgumentApplies reports whether a's premises are all already asserted in
// p, i.e. p is positioned to be forced to accept a's conclusion.
func ArgumentApplies(p Position, a *argument.Argument) bool {
	return satisfiesPremises(p, a)
}

func satisfiesPremises(p Position, a *argument.Argument) bool {
	for _, lit := range a.Premises {
		v, ok := p[lit.Prop]
		if !ok || v != !lit.Negated {
			return false
		}
	}
	return true
}

// Closed reports whether forcing every logically-forced consequence of p
// changes nothing, i.e. p is already closed under the debate's arguments.
func Closed(d *argument.Debate, p Position) (bool, error) {
	closed, err := Close(d, p)
	if err != nil {
		return false, err
	}
	return closed.Equal(p), nil
}
