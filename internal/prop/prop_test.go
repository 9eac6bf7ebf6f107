package prop

import "testing"

func TestPoolAddIsIdempotent(t *testing.T) {
	pool := NewPool()
	a := pool.Add("p0")
	b := pool.Add("p0")
	if a != b {
		t.Fatalf("Add(%q) twice returned distinct propositions: %v != %v", "p0", a, b)
	}
	if pool.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pool.Len())
	}
}

func TestPoolAddAssignsIncreasingIndices(t *testing.T) {
	pool := NewPool()
	names := []string{"a", "b", "c"}
	for i, name := range names {
		p := pool.Add(name)
		if p.Index != i {
			t.Errorf("Add(%q).Index = %d, want %d", name, p.Index, i)
		}
	}
	if pool.Len() != len(names) {
		t.Fatalf("Len() = %d, want %d", pool.Len(), len(names))
	}
}

func TestPoolGet(t *testing.T) {
	pool := NewPool()
	want := pool.Add("a")

	got, ok := pool.Get("a")
	if !ok || got != want {
		t.Fatalf("Get(%q) = %v, %v, want %v, true", "a", got, ok, want)
	}

	if _, ok := pool.Get("missing"); ok {
		t.Fatalf("Get(%q) reported ok for an unregistered name", "missing")
	}
}

func TestLiteralNegation(t *testing.T) {
	pool := NewPool()
	a := pool.Add("a")

	pos := Pos(a)
	neg := Neg(a)

	if pos.Negated {
		t.Fatalf("Pos(a).Negated = true, want false")
	}
	if !neg.Negated {
		t.Fatalf("Neg(a).Negated = false, want true")
	}
	if pos.Negation() != neg {
		t.Fatalf("Pos(a).Negation() = %v, want %v", pos.Negation(), neg)
	}
	if neg.Negation() != pos {
		t.Fatalf("Neg(a).Negation() = %v, want %v", neg.Negation(), pos)
	}
}

func TestSortPropositions(t *testing.T) {
	pool := NewPool()
	a := pool.Add("a")
	b := pool.Add("b")
	c := pool.Add("c")

	unsorted := []Proposition{c, a, b}
	sorted := SortPropositions(unsorted)

	want := []Proposition{a, b, c}
	if len(sorted) != len(want) {
		t.Fatalf("SortPropositions returned %d items, want %d", len(sorted), len(want))
	}
	for i := range want {
		if sorted[i] != want[i] {
			t.Errorf("sorted[%d] = %v, want %v", i, sorted[i], want[i])
		}
	}

	// Input slice must be left untouched.
	if unsorted[0] != c {
		t.Fatalf("SortPropositions mutated its input")
	}
}
