// Package sccp builds the space of coherent & complete positions of a
// debate stage and its Hamming-1 adjacency graph (spec §4.3), generalizing
// the teacher's graph-of-thoughts controller (internal/modes/graph.go) from
// vertex type *ThoughtVertex to position.Position, keyed by each position's
// canonical bit-string encoding rather than a generated ID (§9 "indices
// instead of pointer graphs": the bit-string key doubles as the graph
// library's vertex hash, so there is no separate ID-to-position table to
// keep in sync).
package sccp

import (
	"fmt"

	dgraph "github.com/dominikbraun/graph"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/distance"
	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Key is the canonical bit-string encoding of a complete position over a
// fixed, ordered atom set.
type Key string

func encode(p position.Position, atoms []prop.Proposition) Key {
	b := make([]byte, len(atoms))
	for i, a := range atoms {
		if p[a] {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return Key(b)
}

// Graph is the SCCP of one debate stage: every coherent, complete position,
// with an edge between any two at Hamming distance 1.
type Graph struct {
	Atoms     []prop.Proposition
	graph     dgraph.Graph[Key, position.Position]
	positions map[Key]position.Position
	adjacency map[Key][]Key
}

// Build enumerates a debate's satisfying assignments (its coherent complete
// positions) and connects them by Hamming-1 adjacency.
func Build(engine *kernel.Engine, d *argument.Debate) (*Graph, error) {
	atoms := d.Atoms()
	hash := func(p position.Position) Key { return encode(p, atoms) }

	g := &Graph{
		Atoms:     atoms,
		graph:     dgraph.New(hash, dgraph.Directed()),
		positions: make(map[Key]position.Position),
		adjacency: make(map[Key][]Key),
	}

	f := kernel.FromDebate(d)
	it, err := engine.Enumerate(f, atoms)
	if err != nil {
		return nil, fmt.Errorf("sccp: enumerate models: %w", err)
	}
	for {
		m, ok, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("sccp: enumerate models: %w", err)
		}
		if !ok {
			break
		}
		p := position.Position(m)
		key := hash(p)
		g.positions[key] = p
		if err := g.graph.AddVertex(p); err != nil {
			return nil, fmt.Errorf("sccp: add vertex: %w", err)
		}
	}

	for key, p := range g.positions {
		for _, nb := range distance.HammingNeighbours(p, atoms) {
			if !nb.Complete(atoms) {
				continue
			}
			nk := hash(nb)
			if nk == key {
				continue
			}
			if _, ok := g.positions[nk]; !ok {
				continue
			}
			if key >= nk {
				// Add each undirected edge once, from the lexicographically
				// smaller key, and record it symmetrically in adjacency.
				continue
			}
			if err := g.graph.AddEdge(key, nk); err != nil {
				return nil, fmt.Errorf("sccp: add edge: %w", err)
			}
			g.adjacency[key] = append(g.adjacency[key], nk)
			g.adjacency[nk] = append(g.adjacency[nk], key)
		}
	}

	return g, nil
}

// Size returns the number of coherent complete positions (|SCCP|), the
// quantity spec §3/§8 calls σ.
func (g *Graph) Size() int {
	return len(g.positions)
}

// Positions returns every coherent complete position in the SCCP.
func (g *Graph) Positions() []position.Position {
	out := make([]position.Position, 0, len(g.positions))
	for _, p := range g.positions {
		out = append(out, p)
	}
	return out
}

// Contains reports whether p is a vertex of the SCCP.
func (g *Graph) Contains(p position.Position) bool {
	_, ok := g.positions[encode(p, g.Atoms)]
	return ok
}

// Neighbours returns the positions at Hamming distance 1 from p that are
// themselves in the SCCP.
func (g *Graph) Neighbours(p position.Position) []position.Position {
	key := encode(p, g.Atoms)
	keys := g.adjacency[key]
	out := make([]position.Position, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.positions[k])
	}
	return out
}

// Closest returns the position(s) in the SCCP at minimal Hamming distance
// from target, used by the closest-coherent revision strategy (§4.5b).
func Closest(g *Graph, target position.Position) []position.Position {
	best := -1
	var out []position.Position
	for _, p := range g.positions {
		d := distance.Hamming(p, target, g.Atoms)
		switch {
		case best == -1 || d < best:
			best = d
			out = []position.Position{p}
		case d == best:
			out = append(out, p)
		}
	}
	return out
}
