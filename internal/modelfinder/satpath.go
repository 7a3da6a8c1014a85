package modelfinder

import (
	"context"
	"strconv"
	"strings"

	"github.com/logos-reasoner/logos/internal/engine/sat"
	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

// truePredicateName is a synthetic 0-ary predicate used to represent a
// ground equality's truth value as a literal the existing clausifier/SAT
// pipeline can consume directly.
const truePredicateName = "$true"

// truePredicateAtom is the ground-literal key the SAT grounder assigns to
// the synthetic $true/0 predicate (every atom key is "name(args)", even
// at arity 0).
const truePredicateAtom = truePredicateName + "()"

func trueNode() ast.Node  { return &ast.Predicate{Name: truePredicateName} }
func falseNode() ast.Node { return &ast.Predicate{Name: truePredicateName, Neg: true} }

func andNode(a, b ast.Node) ast.Node {
	if a == nil {
		return b
	}
	return &ast.And{L: a, R: b}
}

func orNode(a, b ast.Node) ast.Node {
	if a == nil {
		return b
	}
	return &ast.Or{L: a, R: b}
}

// groundFormula instantiates every quantifier in n over domain
// {0,...,model.DomainSize-1} and resolves every constant/function subterm
// through model, leaving predicate applications as propositional leaves
// over concrete integer tuples (spec.md §4.J "SAT-backed path": "each
// premise is grounded by instantiating every quantifier over domain").
func groundFormula(n ast.Node, model *Model, e env) ast.Node {
	switch t := n.(type) {
	case *ast.Forall:
		var out ast.Node
		for v := 0; v < model.DomainSize; v++ {
			out = andNode(out, groundFormula(t.Body, model, e.extend(t.Var, v)))
		}
		if out == nil {
			return trueNode()
		}
		return out
	case *ast.Exists:
		var out ast.Node
		for v := 0; v < model.DomainSize; v++ {
			out = orNode(out, groundFormula(t.Body, model, e.extend(t.Var, v)))
		}
		if out == nil {
			return falseNode()
		}
		return out
	case *ast.Implies:
		return &ast.Implies{L: groundFormula(t.L, model, e), R: groundFormula(t.R, model, e)}
	case *ast.Iff:
		return &ast.Iff{L: groundFormula(t.L, model, e), R: groundFormula(t.R, model, e)}
	case *ast.And:
		return &ast.And{L: groundFormula(t.L, model, e), R: groundFormula(t.R, model, e)}
	case *ast.Or:
		return &ast.Or{L: groundFormula(t.L, model, e), R: groundFormula(t.R, model, e)}
	case *ast.Not:
		return &ast.Not{E: groundFormula(t.E, model, e)}
	case *ast.Equals:
		if evalTerm(t.L, model, e) == evalTerm(t.R, model, e) {
			return trueNode()
		}
		return falseNode()
	case *ast.Predicate:
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = &ast.Constant{Name: strconv.Itoa(evalTerm(a, model, e))}
		}
		return &ast.Predicate{Name: t.Name, Args: args, Neg: t.Neg}
	default:
		return n
	}
}

// solveViaSAT resolves the predicate-enumeration layer through the SAT
// engine instead of the bit-by-bit backtracking search: constants and
// functions are already fixed in m by the caller's enumeration, so
// grounding every premise leaves a purely propositional formula over
// predicate-tuple atoms, which the complete DPLL solver decides directly.
// This is the dominant combinatorial cost per spec.md §4.J step 3, so
// routing it through SAT is where the "SAT-backed path" pays off even
// though constant/function enumeration above it still backtracks natively.
func (s *search) solveViaSAT(ctx context.Context, m *Model) {
	var combined ast.Node
	for _, p := range s.premises {
		combined = andNode(combined, groundFormula(p.formula, m, env{}))
	}
	combined = andNode(combined, trueNode())

	result, err := clausify.Clausify(clausify.FromAST(combined), clausify.DefaultOptions())
	if err != nil {
		return
	}

	eng := sat.New()
	clauses := result.Clauses
	for !s.done() {
		if s.cancelled(ctx) {
			return
		}
		satResult, err := eng.CheckSat(ctx, clauses)
		if err != nil || !satResult.Sat {
			return
		}
		candidate := modelFromAssignment(m, satResult.TrueVars)
		if s.n > 8 || !s.isomorphicToFound(candidate) {
			s.found = append(s.found, candidate)
		}
		blocking := blockingClause(satResult.TrueVars)
		if len(blocking.Literals) == 0 {
			return // no atoms of interest left to vary; further solves would repeat
		}
		clauses = append(clauses, blocking)
	}
}

// modelFromAssignment builds a full Model by overlaying a SAT satisfying
// assignment's true ground-literal atoms onto m's already-fixed
// constants/functions.
func modelFromAssignment(m *Model, trueVars map[string]bool) *Model {
	out := m.clone()
	for atom, held := range trueVars {
		if !held || atom == truePredicateAtom {
			continue
		}
		name, args := splitAtom(atom)
		set, ok := out.Predicates[name]
		if !ok {
			set = map[string]bool{}
			out.Predicates[name] = set
		}
		set[tupleKeyFromStrings(args)] = true
	}
	return out
}

// blockingClause negates every true (non-synthetic) atom of interest,
// ruling out exactly this positive-support assignment on re-solve (spec.md
// §4.G step 6 / §4.J "blocking-clause enumeration").
func blockingClause(trueVars map[string]bool) clausify.Clause {
	var lits []clausify.Literal
	for atom, held := range trueVars {
		if !held || atom == truePredicateAtom {
			continue
		}
		name, args := splitAtom(atom)
		lits = append(lits, clausify.Literal{Predicate: name, Args: args, Negated: true})
	}
	return clausify.Clause{Literals: lits}
}

func splitAtom(atom string) (name string, args []string) {
	i := strings.IndexByte(atom, '(')
	if i < 0 {
		return atom, nil
	}
	inner := atom[i+1 : len(atom)-1]
	if inner == "" {
		return atom[:i], nil
	}
	return atom[:i], strings.Split(inner, ",")
}

func tupleKeyFromStrings(args []string) string {
	return strings.Join(args, ",")
}
