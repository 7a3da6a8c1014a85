package ast

import "github.com/logos-reasoner/logos/internal/errs"

// arityMismatch builds the ParseError reported when the same name is used
// with two different arities within a single input (spec.md §3 invariant).
func arityMismatch(name string, want, got int) error {
	return errs.New(errs.CodeParseError, "%q used with arity %d and arity %d in the same input", name, want, got)
}
