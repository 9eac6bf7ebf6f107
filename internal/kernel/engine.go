package kernel

import (
	"fmt"
	"math"

	"github.com/quanticsoul4772/dialectical-sim/internal/prop"
	"github.com/quanticsoul4772/dialectical-sim/pkg/cache"
)

// Model is a complete truth assignment over a formula's variables, or the
// projection of one onto a restricted set of "care" variables.
type Model map[prop.Proposition]bool

// Engine evaluates satisfiability and model queries against Formulas,
// memoizing results behind a generic LRU cache keyed by formula fingerprint
// (§4.1 "a caching-friendly interface" — density and coherence checks run in
// tight simulation loops and repeat the same formula shape often).
type Engine struct {
	satCache   *cache.LRU[string, bool]
	countCache *cache.LRU[string, uint64]
}

// NewEngine builds an Engine with the given cache capacity. A capacity of 0
// uses the library default.
func NewEngine(maxEntries int) *Engine {
	cfg := cache.DefaultConfig()
	if maxEntries > 0 {
		cfg.MaxEntries = maxEntries
	}
	cfg.TTL = 0 // formula results never go stale within a run
	return &Engine{
		satCache:   cache.New[string, bool](cfg),
		countCache: cache.New[string, uint64](cfg),
	}
}

func validate(f *Formula) error {
	known := make(map[prop.Proposition]bool, len(f.Vars))
	for _, v := range f.Vars {
		known[v] = true
	}
	for _, c := range f.Clauses {
		for _, l := range c {
			if !known[l.Prop] {
				return fmt.Errorf("%w: clause references %s, absent from declared variables", ErrFormula, l.Prop)
			}
		}
	}
	return nil
}

// IsSatisfiable reports whether f has at least one model.
func (e *Engine) IsSatisfiable(f *Formula) (bool, error) {
	if err := validate(f); err != nil {
		return false, err
	}
	key := f.Fingerprint()
	if v, ok := e.satCache.Get(key); ok {
		return v, nil
	}
	idx := newDimacsIndex(f.Vars)
	sat, _, err := solveOnce(f, idx, nil)
	if err != nil {
		return false, err
	}
	e.satCache.Set(key, sat)
	return sat, nil
}

// CountUnder reports whether f is satisfiable once assumptions are asserted
// as additional unit clauses (§4.1 count_under's single-assignment form:
// model_count(D ∧ assumptions) > 0 reduces to this satisfiability query, and
// the full count is available via ModelCount(f.WithAssumptions(assumptions))).
func (e *Engine) CountUnder(f *Formula, assumptions []prop.Literal) (bool, error) {
	return e.IsSatisfiable(f.WithAssumptions(assumptions))
}

// ModelCount returns the exact number of satisfying assignments (σ in the
// density formula of spec §3/§8), via exhaustive All-SAT enumeration.
func (e *Engine) ModelCount(f *Formula) (uint64, error) {
	if err := validate(f); err != nil {
		return 0, err
	}
	key := f.Fingerprint()
	if v, ok := e.countCache.Get(key); ok {
		return v, nil
	}
	it, err := e.Enumerate(f, f.Vars)
	if err != nil {
		return 0, err
	}
	var n uint64
	for {
		_, ok, err := it.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		n++
	}
	e.countCache.Set(key, n)
	return n, nil
}

// ModelIter lazily enumerates models of a formula, projected onto a set of
// "care" variables (§4.1 "lazy, deterministic, care_vars-restricted"):
// successive models are guaranteed to differ on at least one care variable,
// but two models agreeing on every care variable and differing only
// elsewhere are never both produced.
type ModelIter struct {
	formula  *Formula
	idx      *dimacsIndex
	care     []prop.Proposition
	blocking []Clause
	done     bool
}

// Enumerate begins a lazy enumeration of f's models, restricted to careVars.
// A nil or empty careVars enumerates over every variable of f.
func (e *Engine) Enumerate(f *Formula, careVars []prop.Proposition) (*ModelIter, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	if len(careVars) == 0 {
		careVars = f.Vars
	}
	return &ModelIter{
		formula: f,
		idx:     newDimacsIndex(f.Vars),
		care:    careVars,
	}, nil
}

// Next returns the next model, or ok=false once the formula's models
// (projected onto the care variables) are exhausted.
func (it *ModelIter) Next() (Model, bool, error) {
	if it.done {
		return nil, false, nil
	}
	if len(it.idx.toProp)-1 == 0 {
		// No variables at all: exactly one (empty) model, the tautology.
		it.done = true
		return Model{}, true, nil
	}
	sat, assignment, err := solveOnce(it.formula, it.idx, it.blocking)
	if err != nil {
		it.done = true
		return nil, false, err
	}
	if !sat {
		it.done = true
		return nil, false, nil
	}
	model := make(Model, len(it.care))
	for _, v := range it.care {
		n := it.idx.toVar[v]
		model[v] = assignment[n-1]
	}
	it.blocking = append(it.blocking, blockingClause(it.care, assignment, it.idx))
	return model, true, nil
}

// MaxModels is an advisory magnitude bound for model counts. ModelCount does
// not consult it: it always enumerates every model.
const MaxModels = math.MaxInt32
