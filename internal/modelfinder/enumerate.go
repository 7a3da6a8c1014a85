package modelfinder

import (
	"context"
	"sort"

	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// premiseInfo pairs a premise formula with the predicate names it mentions,
// precomputed once so the incremental check (spec.md §4.J step 4) can tell
// when a premise becomes decidable against a partial model.
type premiseInfo struct {
	formula ast.Node
	preds   map[string]bool
}

// search is one domain-size attempt's mutable backtracking state.
type search struct {
	n              int
	opts           Options
	premises       []premiseInfo
	constantNames  []string
	functionNames  []string // sorted, each expanded into domain^arity cells below
	predicateNames []string

	funcCells map[string][]string // function name -> sorted tuple keys
	predCells map[string][]string // predicate name -> sorted tuple keys

	found    []*Model
	maxSoFar int // lex-leader high-water mark for constant symmetry breaking

	useSAT bool // route predicate-extent search through the SAT engine (spec.md §4.J "SAT-backed path")
}

func newSearch(formulas []ast.Node, sig *ast.Signature, n int, opts Options) *search {
	s := &search{n: n, opts: opts, funcCells: map[string][]string{}, predCells: map[string][]string{}}
	s.useSAT = n >= opts.satThreshold()

	for _, f := range formulas {
		s.premises = append(s.premises, premiseInfo{formula: f, preds: ast.PredicatesUsed(f)})
	}

	for name := range sig.Constants {
		s.constantNames = append(s.constantNames, name)
	}
	sort.Strings(s.constantNames)

	for name := range sig.Functions {
		s.functionNames = append(s.functionNames, name)
	}
	sort.Strings(s.functionNames)
	for _, name := range s.functionNames {
		s.funcCells[name] = cartesianKeys(n, sig.Functions[name])
	}

	for name := range sig.Predicates {
		s.predicateNames = append(s.predicateNames, name)
	}
	sort.Strings(s.predicateNames)
	for _, name := range s.predicateNames {
		s.predCells[name] = cartesianKeys(n, sig.Predicates[name])
	}

	return s
}

func cartesianKeys(n, arity int) []string {
	if arity == 0 {
		return []string{""}
	}
	var out []string
	var rec func(prefix []int)
	rec = func(prefix []int) {
		if len(prefix) == arity {
			out = append(out, tupleKey(prefix))
			return
		}
		for v := 0; v < n; v++ {
			rec(append(prefix, v))
		}
	}
	rec(nil)
	return out
}

// run performs the full constants -> functions -> predicates backtracking
// search, recording every satisfying model (up to opts.Count distinct ones,
// isomorphism-filtered when n<=8) in s.found.
func (s *search) run(ctx context.Context) {
	m := newModel(s.n)
	s.assignConstants(ctx, m, 0)
}

func (s *search) cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// assignConstants implements lex-leader symmetry breaking (spec.md §4.J
// step 1): the i-th constant may take any value in 0..min(maxSoFar+1,n-1).
func (s *search) assignConstants(ctx context.Context, m *Model, idx int) {
	if s.done() || s.cancelled(ctx) {
		return
	}
	if idx == len(s.constantNames) {
		s.assignFunctionCells(ctx, m, 0)
		return
	}
	name := s.constantNames[idx]
	limit := s.n - 1
	if s.opts.EnableSymmetry && s.maxSoFar+1 < limit {
		limit = s.maxSoFar + 1
	}
	prevMax := s.maxSoFar
	for v := 0; v <= limit; v++ {
		m.Constants[name] = v
		if v > s.maxSoFar {
			s.maxSoFar = v
		}
		s.assignConstants(ctx, m, idx+1)
		s.maxSoFar = prevMax
		if s.done() {
			return
		}
	}
	delete(m.Constants, name)
}

// assignFunctionCells enumerates every function's table cell by cell, one
// function fully decided before moving to the next (spec.md §4.J step 2).
func (s *search) assignFunctionCells(ctx context.Context, m *Model, fnIdx int) {
	if s.done() || s.cancelled(ctx) {
		return
	}
	if fnIdx == len(s.functionNames) {
		if s.useSAT {
			s.solveViaSAT(ctx, m)
			return
		}
		s.assignPredicate(ctx, m, 0)
		return
	}
	name := s.functionNames[fnIdx]
	cells := s.funcCells[name]
	tbl := map[string]int{}
	m.Functions[name] = tbl
	s.fillFunctionCell(ctx, m, name, cells, 0, fnIdx)
	delete(m.Functions, name)
}

func (s *search) fillFunctionCell(ctx context.Context, m *Model, name string, cells []string, cellIdx, fnIdx int) {
	if s.done() || s.cancelled(ctx) {
		return
	}
	if cellIdx == len(cells) {
		s.assignFunctionCells(ctx, m, fnIdx+1)
		return
	}
	key := cells[cellIdx]
	tbl := m.Functions[name]
	for v := 0; v < s.n; v++ {
		tbl[key] = v
		s.fillFunctionCell(ctx, m, name, cells, cellIdx+1, fnIdx)
		if s.done() {
			return
		}
	}
	delete(tbl, key)
}

// assignPredicate enumerates one predicate's entire extent (a subset of its
// domain^k tuples) before moving to the next predicate; once a predicate's
// extent is fully fixed, every premise whose predicates are now all decided
// is checked immediately (spec.md §4.J step 4).
func (s *search) assignPredicate(ctx context.Context, m *Model, predIdx int) {
	if s.done() || s.cancelled(ctx) {
		return
	}
	if predIdx == len(s.predicateNames) {
		s.evaluateComplete(m)
		return
	}
	name := s.predicateNames[predIdx]
	cells := s.predCells[name]
	set := map[string]bool{}
	m.Predicates[name] = set
	s.fillPredicateCell(ctx, m, name, cells, 0, predIdx)
	delete(m.Predicates, name)
}

func (s *search) fillPredicateCell(ctx context.Context, m *Model, name string, cells []string, cellIdx, predIdx int) {
	if s.done() || s.cancelled(ctx) {
		return
	}
	if cellIdx == len(cells) {
		decided := s.decidedPredicates(predIdx + 1)
		if !s.premisesHoldSoFar(m, decided) {
			return
		}
		s.assignPredicate(ctx, m, predIdx+1)
		return
	}
	key := cells[cellIdx]
	set := m.Predicates[name]
	for _, v := range []bool{false, true} {
		if v {
			set[key] = true
		} else {
			delete(set, key)
		}
		s.fillPredicateCell(ctx, m, name, cells, cellIdx+1, predIdx)
		if s.done() {
			return
		}
	}
	delete(set, key)
}

func (s *search) decidedPredicates(throughIdx int) map[string]bool {
	decided := make(map[string]bool, throughIdx)
	for i := 0; i < throughIdx; i++ {
		decided[s.predicateNames[i]] = true
	}
	return decided
}

// premisesHoldSoFar evaluates every premise whose predicate dependencies
// are a subset of decided against the partial model m, backtracking (by
// returning false) on the first falsified one.
func (s *search) premisesHoldSoFar(m *Model, decided map[string]bool) bool {
	for _, p := range s.premises {
		if !subsetOf(p.preds, decided) {
			continue
		}
		if !evaluate(p.formula, m, env{}) {
			return false
		}
	}
	return true
}

func subsetOf(small, big map[string]bool) bool {
	for k := range small {
		if !big[k] {
			return false
		}
	}
	return true
}

// evaluateComplete does the final full check once every predicate is
// fixed, then records the model if it is new up to isomorphism.
func (s *search) evaluateComplete(m *Model) {
	for _, p := range s.premises {
		if !evaluate(p.formula, m, env{}) {
			return
		}
	}
	if s.n <= 8 && s.isomorphicToFound(m) {
		return
	}
	s.found = append(s.found, m.clone())
}

func (s *search) done() bool {
	return len(s.found) >= s.opts.Count
}
