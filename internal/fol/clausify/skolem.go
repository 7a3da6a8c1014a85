package clausify

import (
	"fmt"

	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// SkolemBinding records how one existential variable was eliminated.
type SkolemBinding struct {
	Name string
	Deps []string // enclosing universal variables, in binding order
}

// Env accumulates the Skolemization performed over one clausification run:
// the existential->Skolem-symbol map and the arity of every introduced
// Skolem symbol. The currently-enclosing universals are not stored here;
// they are passed along the walk itself.
type Env struct {
	counter    int
	Bindings   map[string]SkolemBinding
	Introduced map[string]int
}

func newEnv() *Env {
	return &Env{
		Bindings:   map[string]SkolemBinding{},
		Introduced: map[string]int{},
	}
}

// Skolemize eliminates every existential quantifier in n (which must
// already be in NNF and standardized), replacing each existentially bound
// variable with a fresh Skolem constant (if no enclosing universal) or a
// Skolem function of the enclosing universals. Existential quantifiers are
// dropped from the tree; universal quantifiers are left as markers for the
// next pipeline stage to drop. Returns the rewritten tree and the
// populated Env.
func Skolemize(n ast.Node) (ast.Node, *Env) {
	env := newEnv()
	out := SkolemizeWithEnv(n, env)
	return out, env
}

// SkolemizeWithEnv runs Skolemization against a caller-supplied Env, so
// several formulas (e.g. premises and a negated goal) can be Skolemized in
// separate passes while sharing one counter -- required so their generated
// Skolem names never collide (spec.md §4.G step 2, "single Skolem
// environment").
func SkolemizeWithEnv(n ast.Node, env *Env) ast.Node {
	return env.walk(n, nil)
}

func (e *Env) walk(n ast.Node, universals []string) ast.Node {
	switch t := n.(type) {
	case *ast.Forall:
		body := e.walk(t.Body, append(universals, t.Var))
		return &ast.Forall{Var: t.Var, Body: body}
	case *ast.Exists:
		e.counter++
		var name string
		if len(universals) == 0 {
			name = fmt.Sprintf("skc%d", e.counter)
			e.Introduced[name] = 0
		} else {
			name = fmt.Sprintf("skf%d", e.counter)
			e.Introduced[name] = len(universals)
		}
		deps := append([]string(nil), universals...)
		e.Bindings[t.Var] = SkolemBinding{Name: name, Deps: deps}
		body := e.walk(t.Body, universals)
		return body // existential dropped
	case *ast.And:
		return &ast.And{L: e.walk(t.L, universals), R: e.walk(t.R, universals)}
	case *ast.Or:
		return &ast.Or{L: e.walk(t.L, universals), R: e.walk(t.R, universals)}
	case *ast.Not:
		return &ast.Not{E: e.walk(t.E, universals)}
	case *ast.Predicate:
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = e.substTerm(a)
		}
		return &ast.Predicate{Name: t.Name, Args: args, Neg: t.Neg}
	default:
		return n
	}
}

// substTerm replaces every occurrence of a now-bound existential variable
// with its Skolem term, looked up in e.Bindings (populated top-down as the
// walk descends, so by the time a literal is reached every existential
// variable occurring in it has already been bound).
func (e *Env) substTerm(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.Variable:
		if b, ok := e.Bindings[t.Name]; ok {
			if len(b.Deps) == 0 {
				return &ast.Constant{Name: b.Name}
			}
			args := make([]ast.Node, len(b.Deps))
			for i, d := range b.Deps {
				args[i] = &ast.Variable{Name: d}
			}
			return &ast.Function{Name: b.Name, Args: args}
		}
		return t
	case *ast.Function:
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = e.substTerm(a)
		}
		return &ast.Function{Name: t.Name, Args: args}
	default:
		return n
	}
}

// DropUniversals strips every remaining Forall wrapper, leaving its body;
// the bound variable becomes implicit (spec.md §4.D stage 4).
func DropUniversals(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.Forall:
		return DropUniversals(t.Body)
	case *ast.And:
		return &ast.And{L: DropUniversals(t.L), R: DropUniversals(t.R)}
	case *ast.Or:
		return &ast.Or{L: DropUniversals(t.L), R: DropUniversals(t.R)}
	case *ast.Not:
		return &ast.Not{E: DropUniversals(t.E)}
	default:
		return n
	}
}
