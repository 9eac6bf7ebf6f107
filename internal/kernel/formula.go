// Package kernel provides the Boolean formula and model services that back
// every higher-level dialectical operation: satisfiability, model
// enumeration, model counting, and conditional model counting (spec §4.1).
//
// A Debate is, by construction, already a conjunction of clauses: each
// Argument's implication (premises ⇒ conclusion) is one CNF clause
// (¬premises ∨ conclusion), so building a Formula from a Debate needs no
// Tseitin transformation.
package kernel

import (
	"sort"
	"strings"

	"github.com/quanticsoul4772/dialectical-sim/internal/argument"
	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Clause is a disjunction of literals.
type Clause []prop.Literal

// Formula is a conjunction of clauses over a fixed, ordered variable set.
type Formula struct {
	Vars    []prop.Proposition
	Clauses []Clause
}

// FromDebate builds the Formula equivalent to a debate's conjunction of
// arguments, over the debate's full atom snapshot (so propositions added by
// a new_sentence event, but not yet used by any argument, still appear as
// free variables of the formula).
func FromDebate(d *argument.Debate) *Formula {
	f := &Formula{Vars: d.Atoms()}
	for _, a := range d.Arguments() {
		f.Clauses = append(f.Clauses, clauseFromArgument(a))
	}
	return f
}

func clauseFromArgument(a *argument.Argument) Clause {
	c := make(Clause, 0, len(a.Premises)+1)
	for _, lit := range a.Premises {
		c = append(c, lit.Negation())
	}
	c = append(c, a.Conclusion)
	return c
}

// WithAssumptions returns a new Formula with one unit clause appended per
// assumed literal. Used to turn "is L true under D" into a satisfiability
// query, and to build the hard-clause prefix of a partial-MaxSAT problem.
func (f *Formula) WithAssumptions(assumptions []prop.Literal) *Formula {
	out := &Formula{
		Vars:    append([]prop.Proposition(nil), f.Vars...),
		Clauses: append([]Clause(nil), f.Clauses...),
	}
	for _, lit := range assumptions {
		out.Clauses = append(out.Clauses, Clause{lit})
	}
	return out
}

// Fingerprint returns a canonical string key for the formula, used as the
// cache key for satisfiability/model-count memoization (§4.1 "a
// caching-friendly interface").
func (f *Formula) Fingerprint() string {
	var sb strings.Builder
	vars := append([]prop.Proposition(nil), f.Vars...)
	sort.Slice(vars, func(i, j int) bool { return vars[i].Index < vars[j].Index })
	for _, v := range vars {
		sb.WriteString(v.Name)
		sb.WriteByte(',')
	}
	sb.WriteByte('|')

	clauses := make([]string, len(f.Clauses))
	for i, c := range f.Clauses {
		lits := make([]string, len(c))
		for j, l := range c {
			lits[j] = l.String()
		}
		sort.Strings(lits)
		clauses[i] = strings.Join(lits, "+")
	}
	sort.Strings(clauses)
	sb.WriteString(strings.Join(clauses, ";"))
	return sb.String()
}
