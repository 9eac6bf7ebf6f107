package revision

import (
	"fmt"
	"strings"

	"github.com/crillab/gophersat/solver"

	"github.com/quanticsoul4772/dialectical-sim/internal/kernel"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// maxAgreement solves the partial-MaxSAT problem "how many of soft's
// literals can be satisfied by a model of f extended with hardUnits",
// using the old-DIMACS weighted-CNF format gophersat's solver package
// accepts via ParseWCNF: hard clauses carry the reserved top weight, soft
// unit clauses carry weight 1 each (§4.5c: "hard clauses pin D′; soft unit
// clauses assert agreement with each of p's entries").
func maxAgreement(f *kernel.Formula, hardUnits []prop.Literal, soft []prop.Literal) (k int, model map[prop.Proposition]bool, err error) {
	idx := buildVarIndex(f.Vars)
	top := len(soft) + 1

	var sb strings.Builder
	fmt.Fprintf(&sb, "p wcnf %d %d %d\n", len(idx.toProp)-1, len(f.Clauses)+len(hardUnits)+len(soft), top)
	for _, c := range f.Clauses {
		writeWCNFClause(&sb, idx, top, c)
	}
	for _, lit := range hardUnits {
		writeWCNFClause(&sb, idx, top, kernel.Clause{lit})
	}
	for _, lit := range soft {
		writeWCNFWeightedClause(&sb, idx, 1, kernel.Clause{lit})
	}

	pb, err := solver.ParseWCNF(strings.NewReader(sb.String()))
	if err != nil {
		return 0, nil, fmt.Errorf("revision: parse wcnf: %w", err)
	}
	s := solver.New(pb)
	if status := s.Solve(); status != solver.Sat {
		return 0, nil, fmt.Errorf("revision: %w: maxsat solver returned a non-satisfiable status", ErrIncoherentInput)
	}
	model := s.Model()

	agreement := 0
	assignment := make(map[prop.Proposition]bool, len(idx.toVar))
	for _, v := range idx.toProp[1:] {
		n := idx.toVar[v]
		assignment[v] = model[n-1]
	}
	for _, lit := range soft {
		if assignment[lit.Prop] == !lit.Negated {
			agreement++
		}
	}
	return agreement, assignment, nil
}

type varIndex struct {
	toVar  map[prop.Proposition]int
	toProp []prop.Proposition
}

func buildVarIndex(vars []prop.Proposition) *varIndex {
	idx := &varIndex{
		toVar:  make(map[prop.Proposition]int, len(vars)),
		toProp: make([]prop.Proposition, len(vars)+1),
	}
	for i, v := range vars {
		idx.toVar[v] = i + 1
		idx.toProp[i+1] = v
	}
	return idx
}

func wcnfLit(idx *varIndex, l prop.Literal) int {
	n := idx.toVar[l.Prop]
	if l.Negated {
		return -n
	}
	return n
}

func writeWCNFClause(sb *strings.Builder, idx *varIndex, top int, c kernel.Clause) {
	fmt.Fprintf(sb, "%d ", top)
	for _, l := range c {
		fmt.Fprintf(sb, "%d ", wcnfLit(idx, l))
	}
	sb.WriteString("0\n")
}

func writeWCNFWeightedClause(sb *strings.Builder, idx *varIndex, weight int, c kernel.Clause) {
	fmt.Fprintf(sb, "%d ", weight)
	for _, l := range c {
		fmt.Fprintf(sb, "%d ", wcnfLit(idx, l))
	}
	sb.WriteString("0\n")
}
