// Package argument defines arguments and debates, the growing logical
// structure of a simulated deliberation (spec §3, §9 "sum types over
// inheritance").
package argument

import (
	"fmt"

	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
)

// Argument is the ordered pair (premises, conclusion), read as the
// implication "conjunction of premises ⇒ conclusion".
type Argument struct {
	Premises   []prop.Literal
	Conclusion prop.Literal
}

// New validates and builds an Argument. It rejects premise sets that are
// empty or that assign a proposition both polarities.
func New(premises []prop.Literal, conclusion prop.Literal) (*Argument, error) {
	if len(premises) == 0 {
		return nil, fmt.Errorf("argument: premise set must be non-empty")
	}
	seen := make(map[prop.Proposition]bool, len(premises))
	for _, lit := range premises {
		if negated, ok := seen[lit.Prop]; ok && negated != lit.Negated {
			return nil, fmt.Errorf("argument: proposition %s occurs with both polarities in premises", lit.Prop)
		}
		seen[lit.Prop] = lit.Negated
	}
	cp := make([]prop.Literal, len(premises))
	copy(cp, premises)
	return &Argument{Premises: cp, Conclusion: conclusion}, nil
}

// Atoms returns the distinct propositions mentioned by the argument.
func (a *Argument) Atoms() []prop.Proposition {
	seen := make(map[prop.Proposition]bool)
	var out []prop.Proposition
	for _, lit := range a.Premises {
		if !seen[lit.Prop] {
			seen[lit.Prop] = true
			out = append(out, lit.Prop)
		}
	}
	if !seen[a.Conclusion.Prop] {
		out = append(out, a.Conclusion.Prop)
	}
	return out
}

// Requirements returns the partial truth assignment over the argument's
// propositions that makes every premise (and the conclusion) true. Used by
// strategy filters to decide what a position must already hold to match an
// argument.
func (a *Argument) Requirements() map[prop.Proposition]bool {
	reqs := make(map[prop.Proposition]bool, len(a.Premises)+1)
	for _, lit := range a.Premises {
		reqs[lit.Prop] = !lit.Negated
	}
	reqs[a.Conclusion.Prop] = !a.Conclusion.Negated
	return reqs
}

// PremiseKey returns a canonical, order-independent key for the argument's
// premise set, used by the introduction engine's "used premises" tracking
// (§4.4, §9 open question 3).
func (a *Argument) PremiseKey() string {
	lits := make([]prop.Literal, len(a.Premises))
	copy(lits, a.Premises)
	// Sort by proposition index so the key doesn't depend on selection order.
	for i := 1; i < len(lits); i++ {
		key := lits[i]
		j := i - 1
		for j >= 0 && key.Prop.Index < lits[j].Prop.Index {
			lits[j+1] = lits[j]
			j--
		}
		lits[j+1] = key
	}
	s := ""
	for _, l := range lits {
		s += l.String() + "|"
	}
	return s
}

func (a *Argument) String() string {
	s := ""
	for i, p := range a.Premises {
		if i > 0 {
			s += " ∧ "
		}
		s += p.String()
	}
	return fmt.Sprintf("%s ⇒ %s", s, a.Conclusion)
}
