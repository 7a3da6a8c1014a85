package sld

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/engine/axioms"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/fol/horn"
)

// Rule is one Horn rule (body may be empty, making it a fact) or a goal.
type Rule struct {
	Source string // original Program.String(), for byte-identical retract
	Head   Atom
	Body   []Atom
}

// Engine is a shared or session-backed Horn/SLD resolver. Prove works on a
// copy of the rule base taken under mu and leaves the rule base unchanged,
// so the manager shares one instance across one-shot calls and creates a
// separate instance per session for incremental use.
type Engine struct {
	mu    sync.Mutex
	rules []Rule
}

// New returns an empty SLD engine.
func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "horn" }

func (e *Engine) Capabilities() engine.Capabilities {
	return engine.Capabilities{
		Name:                "horn",
		SupportsHorn:        true,
		SupportsFullFOL:     false,
		NativeEquality:      true,
		NativeArithmetic:    true,
		SupportsIncremental: true,
	}
}

// LoadHorn asserts every fact/rule Program (skipping goals) produced by
// internal/fol/horn.Translate.
func (e *Engine) LoadHorn(progs []horn.Program) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range progs {
		if p.Kind == horn.KindGoal {
			continue
		}
		e.rules = append(e.rules, programToRule(p))
	}
}

func programToRule(p horn.Program) Rule {
	r := Rule{Source: p.String(), Head: ParseAtom(p.Head)}
	for _, b := range p.Body {
		r.Body = append(r.Body, ParseAtom(b))
	}
	return r
}

// Assert adds clauses (translated to Horn form) to the rule base.
func (e *Engine) Assert(ctx context.Context, clauses []clausify.Clause) error {
	progs, err := horn.Translate(clauses)
	if err != nil {
		return err
	}
	e.LoadHorn(progs)
	return nil
}

// Retract removes rules whose translated source text byte-matches one of
// clauses; idempotent (retracting something absent returns false, no
// error).
func (e *Engine) Retract(ctx context.Context, clauses []clausify.Clause) (bool, error) {
	progs, err := horn.Translate(clauses)
	if err != nil {
		return false, err
	}
	wanted := map[string]bool{}
	for _, p := range progs {
		wanted[p.String()] = true
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	removed := false
	kept := e.rules[:0]
	for _, r := range e.rules {
		if wanted[r.Source] {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	e.rules = kept
	return removed, nil
}

func (e *Engine) Close() error { return nil }

// CreateSession returns a Session wrapping this Engine so session.Manager
// can assert/retract incrementally.
func (e *Engine) CreateSession(ctx context.Context) (engine.Session, error) {
	return &hornSession{eng: e}, nil
}

type hornSession struct{ eng *Engine }

func (s *hornSession) Assert(ctx context.Context, c []clausify.Clause) error        { return s.eng.Assert(ctx, c) }
func (s *hornSession) Retract(ctx context.Context, c []clausify.Clause) (bool, error) { return s.eng.Retract(ctx, c) }
func (s *hornSession) Close() error                                                  { return nil }

// solveState carries the inference budget, counter, cancellation, and
// optional trace collector across one Prove call.
type solveState struct {
	ctx          context.Context
	budget       int
	count        int
	trace        []string
	includeTrace bool
	arithmetic   bool // opts.EnableArithmetic: dispatch native_* atoms to EvalArithmetic
	equality     bool // opts.EnableEquality: dispatch neq/2 to structural disequality
}

func (s *solveState) cancelled() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// Prove attempts to derive goal from premises (already loaded via
// LoadHorn/Assert into e, or passed fresh here for a one-shot call) using
// depth-first SLD resolution with an inference-step budget. Exceeding the
// budget reports hitLimit=true, distinguishable from a genuine
// disproof (spec.md §4.F).
func (e *Engine) Prove(ctx context.Context, premises []clausify.Clause, goalClauses []clausify.Clause, opts engine.ProveOptions) (*engine.ProveResult, error) {
	progs, err := horn.Translate(premises)
	if err != nil {
		return nil, err
	}
	if opts.EnableEquality {
		for i, p := range progs {
			progs[i] = rewriteEqualityProgram(p, axioms.DefaultEqualityDepth)
		}
	}
	e.mu.Lock()
	rules := append([]Rule(nil), e.rules...)
	e.mu.Unlock()
	for _, p := range progs {
		if p.Kind != horn.KindGoal {
			rules = append(rules, programToRule(p))
		}
	}

	if opts.EnableArithmetic {
		for _, p := range axioms.HornArithmetic() {
			rules = append(rules, programToRule(p))
		}
	}

	if opts.EnableEquality {
		_, functions := horn.CollectSignature(append(append([]clausify.Clause(nil), premises...), goalClauses...))
		for _, p := range axioms.HornEquality(functions, axioms.DefaultEqualityDepth) {
			rules = append(rules, programToRule(p))
		}
	}

	queries, extra, err := horn.TranslateGoal(goalClauses)
	if err != nil {
		return nil, err
	}
	if opts.EnableEquality {
		for i, p := range extra {
			extra[i] = rewriteEqualityProgram(p, axioms.DefaultEqualityDepth)
		}
		for i, q := range queries {
			queries[i] = rewriteEqualityProgram(q, axioms.DefaultEqualityDepth)
		}
	}
	for _, p := range extra {
		rules = append(rules, programToRule(p))
	}

	st := &solveState{ctx: ctx, budget: opts.MaxInferences, includeTrace: opts.IncludeTrace, arithmetic: opts.EnableArithmetic, equality: opts.EnableEquality}
	if st.budget <= 0 {
		st.budget = 1 << 30
	}

	result := &engine.ProveResult{EngineUsed: "horn"}
	var proved bool
	for _, q := range queries {
		goal := make([]Atom, 0, len(q.Body))
		for _, b := range q.Body {
			goal = append(goal, ParseAtom(b))
		}
		sub, found := solve(st, rules, goal, Subst{}, 0)
		if found {
			proved = true
			result.Bindings = bindingsOf(goal, sub)
			break
		}
		if st.cancelled() || (st.count >= st.budget && !found) {
			break
		}
	}

	result.InferenceCount = st.count
	result.Trace = st.trace
	switch {
	case st.cancelled():
		result.Verdict = engine.Timeout
	case proved:
		result.Verdict = engine.Proved
	case st.count >= st.budget:
		result.Verdict = engine.Failed
		result.HitLimit = true
	default:
		result.Verdict = engine.Failed
	}
	return result, nil
}

// rewriteEqualityProgram rewrites "=" literals emitted by
// horn.Translate/TranslateGoal into the equality axiomatizer's predicates
// (spec.md §4.H): an asserted fact becomes eq_fact (the base relation the
// axiom set bridges from), while any other occurrence -- a rule body, a
// goal query -- targets the transitive closure eq_dD so symmetry and
// transitivity apply, not just the raw asserted pairs.
func rewriteEqualityProgram(p horn.Program, depth int) horn.Program {
	top := axioms.EqualityTopPredicate(depth)
	if p.Kind == horn.KindFact {
		p.Head = rewriteEqualityLiteral(p.Head, "eq_fact")
	} else {
		p.Head = rewriteEqualityLiteral(p.Head, top)
	}
	for i, b := range p.Body {
		p.Body[i] = rewriteEqualityLiteral(b, top)
	}
	return p
}

func rewriteEqualityLiteral(s string, target string) string {
	if strings.HasPrefix(s, "=(") && strings.HasSuffix(s, ")") {
		return target + s[1:]
	}
	return s
}

// CheckSat is not natively supported by the Horn engine; callers needing
// propositional satisfiability should use the sat engine. Returning an
// error here (rather than a wrong answer) lets the manager's selection
// algorithm route correctly.
func (e *Engine) CheckSat(ctx context.Context, clauses []clausify.Clause) (*engine.SatResult, error) {
	return nil, fmt.Errorf("horn engine does not implement checkSat directly")
}

// solve performs depth-first SLD resolution over goal, incrementing
// st.count once per resolution step and aborting once st.budget or
// st.ctx's deadline is reached.
func solve(st *solveState, rules []Rule, goal []Atom, sub Subst, gen int) (Subst, bool) {
	if len(goal) == 0 {
		return sub, true
	}
	if st.count >= st.budget || st.cancelled() {
		return nil, false
	}

	first := goal[0]
	rest := goal[1:]

	if st.arithmetic && strings.HasPrefix(first.Predicate, "native_") {
		st.count++
		extended, ok := evalNative(first, sub)
		if !ok {
			return nil, false
		}
		return solve(st, rules, rest, extended, gen)
	}

	if st.equality && first.Predicate == "neq" && len(first.Args) == 2 {
		st.count++
		a := Resolve(first.Args[0], sub)
		b := Resolve(first.Args[1], sub)
		if a.IsVar() || b.IsVar() || a.String() == b.String() {
			return nil, false
		}
		return solve(st, rules, rest, sub, gen)
	}

	for _, r := range rules {
		st.count++
		if st.count >= st.budget || st.cancelled() {
			return nil, false
		}
		seen := map[string]Term{}
		head := renameAtom(r.Head, gen, seen)
		var body []Atom
		for _, b := range r.Body {
			body = append(body, renameAtom(b, gen, seen))
		}

		extended, ok := UnifyAtoms(first, head, sub)
		if !ok {
			continue
		}
		if st.includeTrace {
			st.trace = append(st.trace, fmt.Sprintf("resolve %s via %s", first.String(), r.Source))
		}
		newGoal := append(append([]Atom(nil), body...), rest...)
		if result, found := solve(st, rules, newGoal, extended, gen+1); found {
			return result, true
		}
	}
	return nil, false
}

// evalNative dispatches a native_<op>(A,B,R) atom straight to
// axioms.EvalArithmetic once A and B resolve to ground numerals (spec.md
// §4.H), unifying the computed result against R instead of searching the
// rule base -- axioms.HornArithmetic's generated rules only delegate to
// this predicate, they never assert it as a fact.
func evalNative(a Atom, sub Subst) (Subst, bool) {
	if len(a.Args) != 3 {
		return nil, false
	}
	op := strings.TrimPrefix(a.Predicate, "native_")
	x := Resolve(a.Args[0], sub)
	y := Resolve(a.Args[1], sub)
	if x.IsVar() || y.IsVar() || len(x.Args) != 0 || len(y.Args) != 0 {
		return nil, false
	}
	if !axioms.IsNumeral(x.Name) || !axioms.IsNumeral(y.Name) {
		return nil, false
	}
	xf, _ := strconv.ParseFloat(x.Name, 64)
	yf, _ := strconv.ParseFloat(y.Name, 64)
	rf, ok := axioms.EvalArithmetic(op, xf, yf)
	if !ok {
		return nil, false
	}
	return Unify(a.Args[2], Term{Name: formatNumeral(rf)}, sub)
}

func formatNumeral(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func bindingsOf(goal []Atom, sub Subst) map[string]string {
	out := map[string]string{}
	for _, a := range goal {
		for _, t := range a.Args {
			if t.IsVar() {
				out[t.Var] = Resolve(t, sub).String()
			}
		}
	}
	return out
}
