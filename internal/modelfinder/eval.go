package modelfinder

import "github.com/logos-reasoner/logos/internal/fol/ast"

// env binds in-scope variable names to domain elements during evaluation.
type env map[string]int

func (e env) extend(name string, v int) env {
	out := make(env, len(e)+1)
	for k, val := range e {
		out[k] = val
	}
	out[name] = v
	return out
}

// evaluate implements the Tarskian semantics of spec.md §4.J: forall/exists
// iterate the domain, equals compares term values, terms evaluate by
// variable lookup, the constants table, or a function table.
func evaluate(n ast.Node, m *Model, e env) bool {
	switch t := n.(type) {
	case *ast.Forall:
		for v := 0; v < m.DomainSize; v++ {
			if !evaluate(t.Body, m, e.extend(t.Var, v)) {
				return false
			}
		}
		return true
	case *ast.Exists:
		for v := 0; v < m.DomainSize; v++ {
			if evaluate(t.Body, m, e.extend(t.Var, v)) {
				return true
			}
		}
		return false
	case *ast.Implies:
		return !evaluate(t.L, m, e) || evaluate(t.R, m, e)
	case *ast.Iff:
		return evaluate(t.L, m, e) == evaluate(t.R, m, e)
	case *ast.And:
		return evaluate(t.L, m, e) && evaluate(t.R, m, e)
	case *ast.Or:
		return evaluate(t.L, m, e) || evaluate(t.R, m, e)
	case *ast.Not:
		return !evaluate(t.E, m, e)
	case *ast.Equals:
		eq := evalTerm(t.L, m, e) == evalTerm(t.R, m, e)
		return eq
	case *ast.Predicate:
		args := make([]int, len(t.Args))
		for i, a := range t.Args {
			args[i] = evalTerm(a, m, e)
		}
		set := m.Predicates[t.Name]
		val := set != nil && set[tupleKey(args)]
		if t.Neg {
			return !val
		}
		return val
	default:
		return false
	}
}

// evalTerm evaluates a term node to a domain element; undefined
// variables/constants/function entries default to 0 (the partial-model
// caller only evaluates once every predicate a formula depends on is
// fixed, so this path is only hit for constants/functions already filled
// in -- see PredicatesUsed/dependency tracking in enumerate.go).
func evalTerm(n ast.Node, m *Model, e env) int {
	switch t := n.(type) {
	case *ast.Variable:
		if v, ok := e[t.Name]; ok {
			return v
		}
		return 0
	case *ast.Constant:
		return m.Constants[t.Name]
	case *ast.Function:
		args := make([]int, len(t.Args))
		for i, a := range t.Args {
			args[i] = evalTerm(a, m, e)
		}
		return m.Functions[t.Name][tupleKey(args)]
	default:
		return 0
	}
}
