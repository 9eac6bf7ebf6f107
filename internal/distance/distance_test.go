package distance

import (
	"testing"

	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

func setup(t *testing.T) []prop.Proposition {
	t.Helper()
	pool := prop.NewPool()
	return []prop.Proposition{pool.Add("a"), pool.Add("b"), pool.Add("c")}
}

func TestHamming(t *testing.T) {
	atoms := setup(t)
	a := position.Position{atoms[0]: true, atoms[1]: false}
	b := position.Position{atoms[0]: true, atoms[1]: true, atoms[2]: true}

	got := Hamming(a, b, atoms)
	want := 2 // disagree on atoms[1]; atoms[2] committed-vs-suspended
	if got != want {
		t.Errorf("Hamming() = %d, want %d", got, want)
	}
}

func TestHammingIdenticalPositionsAreZero(t *testing.T) {
	atoms := setup(t)
	p := position.Position{atoms[0]: true, atoms[1]: false}
	if got := Hamming(p, p.Clone(), atoms); got != 0 {
		t.Errorf("Hamming(p, p) = %d, want 0", got)
	}
}

func TestEditDistanceCostsSubstituteDouble(t *testing.T) {
	atoms := setup(t)
	a := position.Position{atoms[0]: true}
	b := position.Position{atoms[0]: false}

	if got := EditDistance(a, b, atoms); got != 2 {
		t.Errorf("EditDistance(opposite commitments) = %d, want 2", got)
	}
}

func TestEditDistanceCostsSuspendVsCommitOne(t *testing.T) {
	atoms := setup(t)
	a := position.Position{atoms[0]: true}
	b := position.New()

	if got := EditDistance(a, b, atoms); got != 1 {
		t.Errorf("EditDistance(suspend vs commit) = %d, want 1", got)
	}
}

func TestNormalisedEditDistanceRange(t *testing.T) {
	atoms := setup(t)
	a := position.Position{atoms[0]: true, atoms[1]: true, atoms[2]: true}
	b := a.Inverse()

	got := NormalisedEditDistance(a, b, atoms)
	if got != 1 {
		t.Errorf("NormalisedEditDistance(fully opposite) = %v, want 1", got)
	}

	if got := NormalisedEditDistance(a, a.Clone(), atoms); got != 0 {
		t.Errorf("NormalisedEditDistance(p, p) = %v, want 0", got)
	}
}

func TestNormalisedEditDistanceEmptyAtoms(t *testing.T) {
	if got := NormalisedEditDistance(position.New(), position.New(), nil); got != 0 {
		t.Errorf("NormalisedEditDistance with no atoms = %v, want 0", got)
	}
}

func TestHammingNeighboursCommittedAtom(t *testing.T) {
	atoms := setup(t)
	p := position.Position{atoms[0]: true}
	neighbours := HammingNeighbours(p, atoms[:1])

	if len(neighbours) != 1 {
		t.Fatalf("HammingNeighbours over one committed atom = %d neighbours, want 1", len(neighbours))
	}
	if neighbours[0][atoms[0]] != false {
		t.Errorf("neighbour of a committed atom should flip it")
	}
}

func TestHammingNeighboursSuspendedAtom(t *testing.T) {
	atoms := setup(t)
	p := position.New()
	neighbours := HammingNeighbours(p, atoms[:1])

	if len(neighbours) != 2 {
		t.Fatalf("HammingNeighbours over one suspended atom = %d neighbours, want 2", len(neighbours))
	}
}

func TestSwitchDeletionNeighboursZeroRadius(t *testing.T) {
	atoms := setup(t)
	p := position.Position{atoms[0]: true}
	out := SwitchDeletionNeighbours(p, 0)
	if len(out) != 1 || !out[0].Equal(p) {
		t.Fatalf("SwitchDeletionNeighbours(p, 0) = %v, want [p]", out)
	}
}

func TestSwitchDeletionNeighboursRadiusOne(t *testing.T) {
	atoms := setup(t)
	p := position.Position{atoms[0]: true}
	out := SwitchDeletionNeighbours(p, 1)

	// One committed atom: exactly one switch, one deletion.
	if len(out) != 2 {
		t.Fatalf("SwitchDeletionNeighbours(p, 1) = %d candidates, want 2", len(out))
	}
	sawSwitch, sawDeletion := false, false
	for _, cand := range out {
		if v, ok := cand[atoms[0]]; ok && v == false {
			sawSwitch = true
		}
		if _, ok := cand[atoms[0]]; !ok {
			sawDeletion = true
		}
	}
	if !sawSwitch || !sawDeletion {
		t.Errorf("SwitchDeletionNeighbours(p, 1) = %v, want one switch and one deletion", out)
	}
}
