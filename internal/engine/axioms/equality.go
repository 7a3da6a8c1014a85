// Package axioms generates the congruence/substitution/comparison axiom
// sets of spec.md §4.H: a depth-limited Horn rule set for the SLD engine,
// and universally quantified equality formulas (run through the normal
// clausification pipeline) for the SAT engine. Arithmetic is a fixed
// closed vocabulary with Horn rules over ground numerals.
package axioms

import (
	"fmt"

	"github.com/logos-reasoner/logos/internal/fol/horn"
)

// DefaultEqualityDepth is the depth bound D used unless a caller overrides
// it.
const DefaultEqualityDepth = 6

// HornEquality emits a depth-limited equality axiom set for the SLD
// engine, parameterized by the signature's function symbols (for
// congruence). Each depth level 1..depth gets its own predicate name
// (eq_d1, eq_d2, ...) rather than a shared predicate driven by an
// arithmetic `D-1` countdown: this engine has no builtin arithmetic
// comparison inside rule bodies, so the depth bound is encoded
// structurally. eq_step at level i only ever calls eq_d at level i-1, so
// resolution strictly shrinks the level on every real step and always
// bottoms out at eq_d0 (plain reflexivity) -- no recursive rule ever
// calls itself at the same or a higher level, so the rule set cannot
// loop.
//
//   - Reflexivity:    eq_d0(X,X).
//   - Carry forward:  eq_di(X,Y) :- eq_d(i-1)(X,Y).
//   - Recursive step: eq_di(X,Y) :- eq_stepi(X,Z), neq(Z,X), eq_d(i-1)(Z,Y).
//   - Fact bridge:    eq_stepi(X,Y) :- eq_fact(X,Y).  (and symmetric)
//   - Congruence:     for every f/n, eq_stepi(f(X1..Xn),f(Y1..Yn)) :- eq_d(i-1)(Xi,Yi)...
//
// `neq` is a reserved builtin the SLD engine's solve loop evaluates
// directly (structural disequality of two resolved terms), used here to
// rule out the trivial X=X "step" that would otherwise let eq_di loop
// forever rediscovering reflexivity instead of making progress.
//
// User equality `a=b` is asserted as `eq_fact(a,b)`; an equality goal
// `a=c` is queried as `eq_dD(a,c)` (the top depth), both rewritten by the
// caller (internal/engine/sld.Engine.Prove), not here -- this function
// only generates the rule set itself.
func HornEquality(functions map[string]int, depth int) []horn.Program {
	if depth <= 0 {
		depth = DefaultEqualityDepth
	}
	var progs []horn.Program

	progs = append(progs, horn.Program{Kind: horn.KindFact, Head: "eq_d0(V_X,V_X)"})

	for i := 1; i <= depth; i++ {
		cur, prev, step := eqDepthName(i), eqDepthName(i-1), eqStepName(i)

		progs = append(progs, horn.Program{
			Kind: horn.KindRule,
			Head: fmt.Sprintf("%s(V_X,V_Y)", cur),
			Body: []string{fmt.Sprintf("%s(V_X,V_Y)", prev)},
		})
		progs = append(progs, horn.Program{
			Kind: horn.KindRule,
			Head: fmt.Sprintf("%s(V_X,V_Y)", cur),
			Body: []string{fmt.Sprintf("%s(V_X,V_Z)", step), "neq(V_Z,V_X)", fmt.Sprintf("%s(V_Z,V_Y)", prev)},
		})

		progs = append(progs, horn.Program{
			Kind: horn.KindRule,
			Head: fmt.Sprintf("%s(V_X,V_Y)", step),
			Body: []string{"eq_fact(V_X,V_Y)"},
		})
		progs = append(progs, horn.Program{
			Kind: horn.KindRule,
			Head: fmt.Sprintf("%s(V_X,V_Y)", step),
			Body: []string{"eq_fact(V_Y,V_X)"},
		})

		for name, arity := range functions {
			if arity == 0 {
				continue
			}
			xs, ys := varList("V_X", arity), varList("V_Y", arity)
			head := fmt.Sprintf("%s(%s(%s),%s(%s))", step, name, joinVars(xs), name, joinVars(ys))
			var body []string
			for k := range xs {
				body = append(body, fmt.Sprintf("%s(%s,%s)", prev, xs[k], ys[k]))
			}
			progs = append(progs, horn.Program{Kind: horn.KindRule, Head: head, Body: body})
		}
	}

	return progs
}

// EqualityTopPredicate names the full-depth equality relation HornEquality
// generates for the given depth -- the predicate an equality goal/premise
// should be rewritten to query/assert against.
func EqualityTopPredicate(depth int) string {
	if depth <= 0 {
		depth = DefaultEqualityDepth
	}
	return eqDepthName(depth)
}

func eqDepthName(i int) string { return fmt.Sprintf("eq_d%d", i) }
func eqStepName(i int) string  { return fmt.Sprintf("eq_step%d", i) }

func varList(prefix string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func joinVars(vs []string) string {
	s := ""
	for i, v := range vs {
		if i > 0 {
			s += ","
		}
		s += v
	}
	return s
}

// EqualityFormulas returns the universally quantified reflexivity,
// symmetry, transitivity, and per-predicate substitution formulas for the
// SAT-refutation path, as Prover9-syntax strings ready for clausification.
// Unlike HornEquality, the SAT path grounds over a finite Herbrand
// universe and resolves/DPLL-searches rather than backward-chaining, so
// the self-referential-substitution looping HornEquality avoids by
// dropping substitution entirely is not a concern here: the full axiom
// set (including substitution) is safe to include.
func EqualityFormulas(functions map[string]int, predicates map[string]int) []string {
	var fs []string
	fs = append(fs, "all x (x = x)")
	fs = append(fs, "all x all y (x = y -> y = x)")
	fs = append(fs, "all x all y all z ((x = y & y = z) -> x = z)")

	for name, arity := range functions {
		if arity == 0 {
			continue
		}
		xs := varList("x", arity)
		ys := varList("y", arity)
		quant := quantAll(append(append([]string{}, xs...), ys...))
		var eqs []string
		for i := range xs {
			eqs = append(eqs, fmt.Sprintf("%s = %s", xs[i], ys[i]))
		}
		fs = append(fs, fmt.Sprintf("%s (%s -> %s(%s) = %s(%s))", quant, joinConj(eqs), name, joinVars(xs), name, joinVars(ys)))
	}

	for name, arity := range predicates {
		if name == "=" || arity == 0 {
			continue
		}
		xs := varList("x", arity)
		ys := varList("y", arity)
		quant := quantAll(append(append([]string{}, xs...), ys...))
		var eqs []string
		for i := range xs {
			eqs = append(eqs, fmt.Sprintf("%s = %s", xs[i], ys[i]))
		}
		fs = append(fs, fmt.Sprintf("%s ((%s & %s(%s)) -> %s(%s))", quant, joinConj(eqs), name, joinVars(xs), name, joinVars(ys)))
	}
	return fs
}

func quantAll(vars []string) string {
	s := ""
	for _, v := range vars {
		s += "all " + v + " "
	}
	return s
}

func joinConj(parts []string) string {
	s := ""
	for i, p := range parts {
		if i > 0 {
			s += " & "
		}
		s += p
	}
	return s
}
