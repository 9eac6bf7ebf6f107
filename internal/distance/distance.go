// Package distance implements the position-distance metrics and
// neighbourhood generators of spec §4.3: Hamming distance, edit distance,
// Hamming-1 neighbours, and switch-deletion neighbourhoods.
package distance

import (
	"fmt"
	"strings"

	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Hamming returns the number of propositions on which a and b, restricted to
// atoms, disagree (including one committing where the other suspends).
func Hamming(a, b position.Position, atoms []prop.Proposition) int {
	n := 0
	for _, p := range atoms {
		va, oka := a[p]
		vb, okb := b[p]
		switch {
		case oka && okb:
			if va != vb {
				n++
			}
		case oka != okb:
			n++
		}
	}
	return n
}

// editOp is the cost of reconciling a single proposition's entries in two
// positions: 0 if they agree, 1 if one suspends where the other commits
// (insert/delete), 2 if they commit to opposite polarities (substitute).
func editOp(va bool, oka bool, vb bool, okb bool) int {
	switch {
	case oka && okb:
		if va == vb {
			return 0
		}
		return 2
	case oka != okb:
		return 1
	default:
		return 0
	}
}

// EditDistance is the edit distance between two positions over atoms:
// agreement costs 0, suspend-vs-commit costs 1 (insert/delete), and opposite
// commitments cost 2 (substitute, i.e. delete then insert).
func EditDistance(a, b position.Position, atoms []prop.Proposition) int {
	n := 0
	for _, p := range atoms {
		va, oka := a[p]
		vb, okb := b[p]
		n += editOp(va, oka, vb, okb)
	}
	return n
}

// NormalisedEditDistance divides EditDistance by its maximum possible value
// (2 per atom), yielding a value in [0, 1]. Used by the social-influence
// simulation variant to weight adoption coin flips (§4.7).
func NormalisedEditDistance(a, b position.Position, atoms []prop.Proposition) float64 {
	if len(atoms) == 0 {
		return 0
	}
	return float64(EditDistance(a, b, atoms)) / float64(2*len(atoms))
}

// HammingNeighbours returns every position at Hamming distance 1 from p over
// atoms: each reachable by flipping exactly one committed entry, or
// asserting one currently-suspended atom in each polarity.
func HammingNeighbours(p position.Position, atoms []prop.Proposition) []position.Position {
	var out []position.Position
	for _, a := range atoms {
		v, ok := p[a]
		if ok {
			flipped := p.Clone()
			flipped[a] = !v
			out = append(out, flipped)
			continue
		}
		forTrue := p.Clone()
		forTrue[a] = true
		forFalse := p.Clone()
		forFalse[a] = false
		out = append(out, forTrue, forFalse)
	}
	return out
}

// SwitchDeletionNeighbours returns every position reachable from p by
// performing one to d "switch" (flip a commitment) or "deletion" (suspend a
// commitment) operations, the neighbourhood the closest-closed-partial-
// coherent revision strategy searches (§4.5c). For d > 0 the result leaves
// out p itself; for d <= 0 it holds only a copy of p.
func SwitchDeletionNeighbours(p position.Position, d int) []position.Position {
	if d <= 0 {
		return []position.Position{p.Clone()}
	}
	frontier := []position.Position{p.Clone()}
	seen := map[string]bool{encode(p): true}
	var all []position.Position
	for step := 0; step < d; step++ {
		var next []position.Position
		for _, cur := range frontier {
			for _, cand := range switchDeleteStep(cur) {
				key := encode(cand)
				if seen[key] {
					continue
				}
				seen[key] = true
				next = append(next, cand)
				all = append(all, cand)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return all
}

func switchDeleteStep(p position.Position) []position.Position {
	var out []position.Position
	for a, v := range p {
		switched := p.Clone()
		switched[a] = !v
		out = append(out, switched)

		deleted := p.Clone()
		delete(deleted, a)
		out = append(out, deleted)
	}
	return out
}

func encode(p position.Position) string {
	props := make([]prop.Proposition, 0, len(p))
	for k := range p {
		props = append(props, k)
	}
	props = prop.SortPropositions(props)
	var sb strings.Builder
	for _, pr := range props {
		fmt.Fprintf(&sb, "%d:", pr.Index)
		if p[pr] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		sb.WriteByte(',')
	}
	return sb.String()
}
