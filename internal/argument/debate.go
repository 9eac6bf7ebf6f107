package argument

import "github.com/quanticsoul4772/dialectical-sim/internal/prop"

// Debate is an ordered collection of arguments, interpreted as the
// conjunction of all member arguments, plus the snapshot of the proposition
// pool in scope at this stage. The atom snapshot is tracked explicitly
// (rather than derived purely from argument premises/conclusions) because a
// "new_sentence" event can grow the atom pool without adding an argument
// (§3 stage-monotonicity invariant, §4.7 new-sentence event).
//
// A Debate with zero arguments is the distinguished empty debate: it is
// tautologically satisfied and has inferential density 0.
type Debate struct {
	arguments []*Argument
	atoms     []prop.Proposition
}

// Empty returns the distinguished empty debate over the given atom pool.
func Empty(atoms []prop.Proposition) *Debate {
	return &Debate{atoms: append([]prop.Proposition(nil), atoms...)}
}

// Append returns a new debate with one more argument committed. The
// argument's atoms are folded into the atom snapshot if not already present.
func (d *Debate) Append(a *Argument) *Debate {
	next := &Debate{
		arguments: append(append([]*Argument(nil), d.arguments...), a),
		atoms:     append([]prop.Proposition(nil), d.atoms...),
	}
	next.atoms = unionAtoms(next.atoms, a.Atoms())
	return next
}

// WithExpandedPool returns a new debate carrying the same arguments forward
// but with the atom pool expanded by one more proposition (the new_sentence
// event of §4.7).
func (d *Debate) WithExpandedPool(p prop.Proposition) *Debate {
	next := &Debate{
		arguments: append([]*Argument(nil), d.arguments...),
		atoms:     unionAtoms(append([]prop.Proposition(nil), d.atoms...), []prop.Proposition{p}),
	}
	return next
}

func unionAtoms(base []prop.Proposition, extra []prop.Proposition) []prop.Proposition {
	seen := make(map[prop.Proposition]bool, len(base))
	for _, p := range base {
		seen[p] = true
	}
	for _, p := range extra {
		if !seen[p] {
			seen[p] = true
			base = append(base, p)
		}
	}
	return prop.SortPropositions(base)
}

// Arguments returns the debate's committed arguments in introduction order.
func (d *Debate) Arguments() []*Argument {
	out := make([]*Argument, len(d.arguments))
	copy(out, d.arguments)
	return out
}

// Len returns the number of committed arguments.
func (d *Debate) Len() int {
	return len(d.arguments)
}

// IsEmpty reports whether this is the distinguished empty debate.
func (d *Debate) IsEmpty() bool {
	return len(d.arguments) == 0
}

// Atoms returns the propositions in scope at this stage, in canonical order.
func (d *Debate) Atoms() []prop.Proposition {
	out := make([]prop.Proposition, len(d.atoms))
	copy(out, d.atoms)
	return out
}

// HasAtom reports whether a proposition is in scope at this stage.
func (d *Debate) HasAtom(p prop.Proposition) bool {
	for _, a := range d.atoms {
		if a == p {
			return true
		}
	}
	return false
}

// ListOfPremises returns the premise sets of every argument, in order.
func (d *Debate) ListOfPremises() [][]prop.Literal {
	out := make([][]prop.Literal, len(d.arguments))
	for i, a := range d.arguments {
		out[i] = a.Premises
	}
	return out
}
