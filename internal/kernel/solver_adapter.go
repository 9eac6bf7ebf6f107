package kernel

import (
	"fmt"
	"strings"

	"github.com/crillab/gophersat/solver"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// dimacsIndex assigns each proposition a stable 1-based DIMACS variable
// number. The mapping is local to one encoding of one Formula.
type dimacsIndex struct {
	toVar  map[prop.Proposition]int
	toProp []prop.Proposition // 1-indexed; toProp[0] unused
}

func newDimacsIndex(vars []prop.Proposition) *dimacsIndex {
	idx := &dimacsIndex{
		toVar:  make(map[prop.Proposition]int, len(vars)),
		toProp: make([]prop.Proposition, len(vars)+1),
	}
	for i, v := range vars {
		idx.toVar[v] = i + 1
		idx.toProp[i+1] = v
	}
	return idx
}

func (idx *dimacsIndex) lit(l prop.Literal) int {
	n := idx.toVar[l.Prop]
	if l.Negated {
		return -n
	}
	return n
}

func (idx *dimacsIndex) nbVars() int {
	return len(idx.toProp) - 1
}

// dimacsText renders a formula plus extra blocking clauses (in DIMACS
// variable numbering) as DIMACS CNF text, the portable input
// gophersat/solver.ParseCNF accepts.
func dimacsText(f *Formula, idx *dimacsIndex, extra []Clause) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", idx.nbVars(), len(f.Clauses)+len(extra))
	for _, c := range f.Clauses {
		writeDimacsClause(&sb, idx, c)
	}
	for _, c := range extra {
		writeDimacsClause(&sb, idx, c)
	}
	return sb.String()
}

func writeDimacsClause(sb *strings.Builder, idx *dimacsIndex, c Clause) {
	for _, l := range c {
		fmt.Fprintf(sb, "%d ", idx.lit(l))
	}
	sb.WriteString("0\n")
}

// solveOnce runs one satisfiability check, returning the satisfying
// assignment when satisfiable. The assignment is 0-based: DIMACS variable n
// is at index n-1.
func solveOnce(f *Formula, idx *dimacsIndex, extra []Clause) (sat bool, model []bool, err error) {
	if idx.nbVars() == 0 {
		// A formula over zero variables is the empty debate: tautologically
		// satisfied, with the trivial (empty) model.
		return true, nil, nil
	}
	text := dimacsText(f, idx, extra)
	pb, err := solver.ParseCNF(strings.NewReader(text))
	if err != nil {
		return false, nil, fmt.Errorf("kernel: parse cnf: %w", err)
	}
	s := solver.New(pb)
	switch s.Solve() {
	case solver.Sat:
		return true, s.Model(), nil
	case solver.Unsat:
		return false, nil, nil
	default:
		return false, nil, fmt.Errorf("kernel: %w: solver returned an indeterminate status", ErrBackend)
	}
}

// blockingClause returns the clause that excludes exactly the given
// assignment over vars, the standard All-SAT "blocking clause" construction:
// the disjunction of each variable's opposite literal.
func blockingClause(vars []prop.Proposition, model []bool, idx *dimacsIndex) Clause {
	c := make(Clause, 0, len(vars))
	for _, v := range vars {
		n := idx.toVar[v]
		assigned := model[n-1]
		c = append(c, prop.Literal{Prop: v, Negated: assigned})
	}
	return c
}
