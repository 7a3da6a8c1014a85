package clausify

import "github.com/logos-reasoner/logos/internal/fol/ast"

// ToNNF rewrites a formula to negation normal form: biconditionals and
// implications are expanded, negation is pushed inward via De Morgan and
// quantifier duality, and double negation collapses. After ToNNF no Not or
// Equals node remains: negation sits only on atoms, as a Predicate with Neg
// set, and an equality becomes a Predicate named "=".
func ToNNF(n ast.Node) ast.Node {
	return nnf(n, false)
}

// nnf rewrites n, with neg tracking whether an odd number of negations are
// pending above this node.
func nnf(n ast.Node, neg bool) ast.Node {
	switch t := n.(type) {
	case *ast.Iff:
		// A<->B == (A->B)&(B->A)
		expanded := &ast.And{
			L: &ast.Implies{L: t.L, R: t.R},
			R: &ast.Implies{L: t.R, R: t.L},
		}
		return nnf(expanded, neg)
	case *ast.Implies:
		// A->B == -A|B
		expanded := &ast.Or{L: &ast.Not{E: t.L}, R: t.R}
		return nnf(expanded, neg)
	case *ast.And:
		if neg {
			return &ast.Or{L: nnf(t.L, true), R: nnf(t.R, true)}
		}
		return &ast.And{L: nnf(t.L, false), R: nnf(t.R, false)}
	case *ast.Or:
		if neg {
			return &ast.And{L: nnf(t.L, true), R: nnf(t.R, true)}
		}
		return &ast.Or{L: nnf(t.L, false), R: nnf(t.R, false)}
	case *ast.Not:
		return nnf(t.E, !neg)
	case *ast.Forall:
		if neg {
			return &ast.Exists{Var: t.Var, Body: nnf(t.Body, true)}
		}
		return &ast.Forall{Var: t.Var, Body: nnf(t.Body, false)}
	case *ast.Exists:
		if neg {
			return &ast.Forall{Var: t.Var, Body: nnf(t.Body, true)}
		}
		return &ast.Exists{Var: t.Var, Body: nnf(t.Body, false)}
	case *ast.Predicate:
		if neg {
			return &ast.Predicate{Name: t.Name, Args: t.Args, Neg: !t.Neg}
		}
		return t
	case *ast.Equals:
		if neg {
			// represented as a negated pseudo-predicate "=" so literal
			// extraction treats it uniformly with other atoms.
			return &ast.Predicate{Name: "=", Args: []ast.Node{t.L, t.R}, Neg: true}
		}
		return &ast.Predicate{Name: "=", Args: []ast.Node{t.L, t.R}, Neg: false}
	default:
		return n
	}
}
