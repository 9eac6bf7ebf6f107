// Package argmap builds the argument map of a debate: a directed graph over
// arguments with support/attack labelled edges (spec §4.3's argument map,
// taupy's Base.map()). Like internal/sccp, it generalizes the teacher's
// graph-of-thoughts controller to a new vertex type, keyed by an index
// rather than a generated ID (§9 "indices instead of pointer graphs").
package argmap

import (
	"fmt"

	dgraph "github.com/dominikbraun/graph"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
)

// Label classifies an edge between two arguments.
type Label int

const (
	// Support labels an edge where one argument's conclusion is reused, at
	// the same polarity, as a premise of another.
	Support Label = iota
	// Attack labels an edge where one argument's conclusion is reused,
	// negated, as a premise of another.
	Attack
)

func (l Label) String() string {
	if l == Attack {
		return "attack"
	}
	return "support"
}

// Edge is one labelled relation between two arguments, identified by their
// index in the debate's argument list.
type Edge struct {
	From, To int
	Label    Label
}

// Map is the argument map of one debate stage.
type Map struct {
	Arguments []*argument.Argument
	Edges     []Edge
	graph     dgraph.Graph[int, int]
}

func vertexHash(i int) int { return i }

// Build derives the support/attack graph of a debate: for every ordered
// pair of distinct arguments (a, b), b is linked from a if a's conclusion
// literal (or its negation) appears among b's premises.
func Build(d *argument.Debate) (*Map, error) {
	args := d.Arguments()
	g := dgraph.New(vertexHash, dgraph.Directed())
	for i := range args {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("argmap: add vertex: %w", err)
		}
	}

	m := &Map{Arguments: args, graph: g}
	haveEdge := make(map[[2]int]bool)
	for i, a := range args {
		for j, b := range args {
			if i == j {
				continue
			}
			for _, premise := range b.Premises {
				switch {
				case premise == a.Conclusion:
					m.Edges = append(m.Edges, Edge{From: i, To: j, Label: Support})
				case premise == a.Conclusion.Negation():
					m.Edges = append(m.Edges, Edge{From: i, To: j, Label: Attack})
				default:
					continue
				}
				if !haveEdge[[2]int{i, j}] {
					haveEdge[[2]int{i, j}] = true
					if err := g.AddEdge(i, j); err != nil {
						return nil, fmt.Errorf("argmap: add edge: %w", err)
					}
				}
			}
		}
	}
	return m, nil
}

// Supporters returns the indices of arguments that support argument i.
func (m *Map) Supporters(i int) []int {
	return m.related(i, Support, false)
}

// Attackers returns the indices of arguments that attack argument i.
func (m *Map) Attackers(i int) []int {
	return m.related(i, Attack, false)
}

func (m *Map) related(i int, label Label, outgoing bool) []int {
	var out []int
	for _, e := range m.Edges {
		if e.Label != label {
			continue
		}
		if outgoing && e.From == i {
			out = append(out, e.To)
		}
		if !outgoing && e.To == i {
			out = append(out, e.From)
		}
	}
	return out
}
