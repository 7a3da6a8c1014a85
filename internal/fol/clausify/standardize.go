package clausify

import (
	"fmt"

	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// standardizer assigns every binder a fresh "_vN" name and substitutes the
// bound variable within its extent only, restoring the previous renaming on
// exit so an outer variable shadowed by an inner binder of the same source
// name still resolves to the outer renaming once the inner binder's extent
// ends.
type standardizer struct {
	counter int
	// rename maps a source variable name to a stack of its successive
	// standardized names; the top of each stack is the active renaming.
	rename map[string][]string
}

// Standardize renames every quantifier-bound variable in n to a fresh
// "_vN" name, handling shadowing correctly (spec.md §4.D stage 2, §8
// shadowing test).
func Standardize(n ast.Node) ast.Node {
	s := &standardizer{rename: map[string][]string{}}
	return s.walk(n)
}

func (s *standardizer) fresh() string {
	s.counter++
	return fmt.Sprintf("_v%d", s.counter)
}

func (s *standardizer) push(name, fresh string) {
	s.rename[name] = append(s.rename[name], fresh)
}

func (s *standardizer) pop(name string) {
	stack := s.rename[name]
	s.rename[name] = stack[:len(stack)-1]
}

func (s *standardizer) active(name string) (string, bool) {
	stack := s.rename[name]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1], true
}

func (s *standardizer) walk(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.Forall:
		f := s.fresh()
		s.push(t.Var, f)
		body := s.walk(t.Body)
		s.pop(t.Var)
		return &ast.Forall{Var: f, Body: body}
	case *ast.Exists:
		f := s.fresh()
		s.push(t.Var, f)
		body := s.walk(t.Body)
		s.pop(t.Var)
		return &ast.Exists{Var: f, Body: body}
	case *ast.And:
		return &ast.And{L: s.walk(t.L), R: s.walk(t.R)}
	case *ast.Or:
		return &ast.Or{L: s.walk(t.L), R: s.walk(t.R)}
	case *ast.Not:
		return &ast.Not{E: s.walk(t.E)}
	case *ast.Implies:
		return &ast.Implies{L: s.walk(t.L), R: s.walk(t.R)}
	case *ast.Iff:
		return &ast.Iff{L: s.walk(t.L), R: s.walk(t.R)}
	case *ast.Equals:
		return &ast.Equals{L: s.walkTerm(t.L), R: s.walkTerm(t.R)}
	case *ast.Predicate:
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.walkTerm(a)
		}
		return &ast.Predicate{Name: t.Name, Args: args, Neg: t.Neg}
	default:
		return s.walkTerm(n)
	}
}

func (s *standardizer) walkTerm(n ast.Node) ast.Node {
	switch t := n.(type) {
	case *ast.Variable:
		if r, ok := s.active(t.Name); ok {
			return &ast.Variable{Name: r}
		}
		return t
	case *ast.Function:
		args := make([]ast.Node, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.walkTerm(a)
		}
		return &ast.Function{Name: t.Name, Args: args}
	default:
		return n
	}
}
