package sat

import (
	"context"
	"fmt"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/engine/axioms"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/fol/horn"
)

// Engine implements propositional satisfiability directly and first-order
// refutation by Herbrand grounding (spec.md §4.G).
type Engine struct {
	asserted []clausify.Clause
}

// New returns an empty SAT engine.
func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return "sat" }

func (e *Engine) Capabilities() engine.Capabilities {
	return engine.Capabilities{
		Name:                "sat",
		SupportsHorn:        true,
		SupportsFullFOL:     true,
		NativeEquality:      true,
		NativeArithmetic:    false,
		SupportsIncremental: true,
	}
}

func (e *Engine) Close() error { return nil }

func (e *Engine) Assert(ctx context.Context, clauses []clausify.Clause) error {
	e.asserted = append(e.asserted, clauses...)
	return nil
}

func (e *Engine) Retract(ctx context.Context, clauses []clausify.Clause) (bool, error) {
	wanted := map[string]bool{}
	for _, c := range clauses {
		wanted[c.String()] = true
	}
	removed := false
	kept := e.asserted[:0]
	for _, c := range e.asserted {
		if wanted[c.String()] {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	e.asserted = kept
	return removed, nil
}

func (e *Engine) CreateSession(ctx context.Context) (engine.Session, error) {
	return &satSession{eng: e}, nil
}

type satSession struct{ eng *Engine }

func (s *satSession) Assert(ctx context.Context, c []clausify.Clause) error { return s.eng.Assert(ctx, c) }
func (s *satSession) Retract(ctx context.Context, c []clausify.Clause) (bool, error) {
	return s.eng.Retract(ctx, c)
}
func (s *satSession) Close() error { return nil }

// CheckSat treats clauses as already ground (spec.md §4.G "checkSat(clauses)"):
// each distinct ground literal maps to a positive DIMACS integer and the
// DPLL solver decides satisfiability directly, with no Herbrand expansion.
func (e *Engine) CheckSat(ctx context.Context, clauses []clausify.Clause) (*engine.SatResult, error) {
	g := NewGrounder()
	ground := make([][]int32, 0, len(clauses))
	for _, c := range clauses {
		lits := make([]int32, 0, len(c.Literals))
		for _, l := range c.Literals {
			v := g.varFor(atomKey(l.Predicate, l.Args))
			if l.Negated {
				v = -v
			}
			lits = append(lits, v)
		}
		ground = append(ground, lits)
	}
	solver := NewSolver(ground, g.NumVars())
	sol, sat := solver.Solve(ctx)
	decisions, conflicts := solver.Stats()
	result := &engine.SatResult{
		Sat: sat,
		Statistics: engine.SatStats{
			Decisions: decisions,
			Conflicts: conflicts,
			Variables: g.NumVars(),
			Clauses:   len(clauses),
		},
	}
	if sat {
		result.TrueVars = map[string]bool{}
		for v := range sol.TrueVars {
			result.TrueVars[g.LiteralName(v)] = true
		}
	}
	return result, nil
}

// Prove builds ⋀premises ∧ ¬goal (already clausified together by the
// caller under a single Skolem environment, per spec.md §4.G step 1-2),
// grounds it via Herbrand instantiation, and calls the solver: UNSAT means
// proved, SAT means failed (a counter-model exists within the grounding --
// never reported as a positive disproof, since the grounding may be
// incomplete for clauses with more than MaxGroundVars free variables).
func (e *Engine) Prove(ctx context.Context, premises []clausify.Clause, goal []clausify.Clause, opts engine.ProveOptions) (*engine.ProveResult, error) {
	all := append(append([]clausify.Clause(nil), premises...), goal...)
	if opts.EnableEquality {
		eqClauses, err := equalityClauses(all)
		if err != nil {
			return nil, err
		}
		all = append(all, eqClauses...)
	}
	gr := Ground(all)
	solver := NewSolver(gr.Clauses, gr.Grounder.NumVars())
	sol, sat := solver.Solve(ctx)
	decisions, conflicts := solver.Stats()

	result := &engine.ProveResult{EngineUsed: "sat", InferenceCount: decisions + conflicts}
	switch {
	case ctxDone(ctx):
		result.Verdict = engine.Timeout
	case !sat:
		result.Verdict = engine.Proved
	default:
		result.Verdict = engine.Failed
		result.Bindings = modelBindings(sol, gr.Grounder)
	}
	if opts.IncludeTrace && gr.UngroundedClauses > 0 {
		result.Trace = append(result.Trace, fmt.Sprintf("%d clause(s) exceeded MaxGroundVars and were left ungrounded", gr.UngroundedClauses))
	}
	return result, nil
}

// equalityClauses clausifies the full reflexivity/symmetry/transitivity/
// congruence/substitution axiom set (spec.md §4.H) over clauses' predicate
// and function signature, one formula at a time under a fresh Skolem
// environment each (the axioms are already variable-closed, so sharing an
// environment across them buys nothing and keeps each clausify call
// independent).
func equalityClauses(clauses []clausify.Clause) ([]clausify.Clause, error) {
	predicates, functions := horn.CollectSignature(clauses)
	opts := clausify.DefaultOptions()
	var out []clausify.Clause
	for _, formula := range axioms.EqualityFormulas(functions, predicates) {
		res, err := clausify.Clausify(clausify.FromText(formula), opts)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Clauses...)
	}
	return out, nil
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func modelBindings(sol *Solution, g *Grounder) map[string]string {
	if sol == nil {
		return nil
	}
	out := map[string]string{}
	for v := range sol.TrueVars {
		out[g.LiteralName(v)] = "true"
	}
	return out
}
