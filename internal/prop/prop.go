// Package prop defines propositions and literals, the atomic vocabulary that
// arguments, debates, and positions are built from.
package prop

import "fmt"

// Proposition is an atomic symbol drawn from a finite, append-only pool. Its
// Index fixes the deterministic total order used for canonical bit-string
// encodings of positions (§3, §9 "indices instead of pointer graphs").
type Proposition struct {
	Name  string
	Index int
}

// Less orders propositions by pool insertion order, never by name: the pool
// only grows, so insertion order is stable across a run.
func (p Proposition) Less(other Proposition) bool {
	return p.Index < other.Index
}

func (p Proposition) String() string {
	return p.Name
}

// Literal is a proposition together with a polarity.
type Literal struct {
	Prop    Proposition
	Negated bool
}

// Pos builds the asserted literal for a proposition.
func Pos(p Proposition) Literal { return Literal{Prop: p} }

// Neg builds the negated literal for a proposition.
func Neg(p Proposition) Literal { return Literal{Prop: p, Negated: true} }

// Negation returns the complementary literal.
func (l Literal) Negation() Literal {
	return Literal{Prop: l.Prop, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return fmt.Sprintf("¬%s", l.Prop.Name)
	}
	return l.Prop.Name
}

// Pool is the append-only vocabulary of propositions for a simulation run.
// Propositions live for the whole run; the pool may only grow (§3 Lifecycles).
type Pool struct {
	byIndex []Proposition
	byName  map[string]Proposition
}

// NewPool creates an empty proposition pool.
func NewPool() *Pool {
	return &Pool{byName: make(map[string]Proposition)}
}

// Add registers a new proposition with the given stable name and returns it.
// Adding a name that already exists returns the existing proposition.
func (p *Pool) Add(name string) Proposition {
	if existing, ok := p.byName[name]; ok {
		return existing
	}
	prop := Proposition{Name: name, Index: len(p.byIndex)}
	p.byIndex = append(p.byIndex, prop)
	p.byName[name] = prop
	return prop
}

// Get looks up a proposition by name.
func (p *Pool) Get(name string) (Proposition, bool) {
	prop, ok := p.byName[name]
	return prop, ok
}

// Len reports the number of propositions registered so far.
func (p *Pool) Len() int {
	return len(p.byIndex)
}

// All returns the propositions in canonical (insertion) order.
func (p *Pool) All() []Proposition {
	out := make([]Proposition, len(p.byIndex))
	copy(out, p.byIndex)
	return out
}

// SortPropositions returns props sorted by the pool's canonical order.
//
// Insertion sort: these atom lists are small (one debate's proposition
// count), so the simple approach avoids pulling in sort.Slice closures.
func SortPropositions(props []Proposition) []Proposition {
	out := make([]Proposition, len(props))
	copy(out, props)
	for i := 1; i < len(out); i++ {
		key := out[i]
		j := i - 1
		for j >= 0 && key.Index < out[j].Index {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = key
	}
	return out
}
