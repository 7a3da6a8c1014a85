package sld

import "strconv"

// Subst is a unification substitution: variable name -> bound term.
type Subst map[string]Term

func (s Subst) clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// walk follows variable bindings in s until reaching an unbound variable
// or a non-variable term.
func walk(t Term, s Subst) Term {
	for t.IsVar() {
		bound, ok := s[t.Var]
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// Unify attempts to unify a and b under substitution s, returning the
// extended substitution or ok=false on failure. No occurs-check is
// performed (matching the Prolog-style engines this is modeled on; the
// inference budget on resolution keeps runaway infinite terms from looping
// forever within one prove call).
func Unify(a, b Term, s Subst) (Subst, bool) {
	a = walk(a, s)
	b = walk(b, s)

	switch {
	case a.IsVar() && b.IsVar() && a.Var == b.Var:
		return s, true
	case a.IsVar():
		out := s.clone()
		out[a.Var] = b
		return out, true
	case b.IsVar():
		out := s.clone()
		out[b.Var] = a
		return out, true
	case a.Name != b.Name || len(a.Args) != len(b.Args):
		return nil, false
	default:
		cur := s
		for i := range a.Args {
			var ok bool
			cur, ok = Unify(a.Args[i], b.Args[i], cur)
			if !ok {
				return nil, false
			}
		}
		return cur, true
	}
}

// UnifyAtoms unifies two atoms of the same predicate/arity.
func UnifyAtoms(a, b Atom, s Subst) (Subst, bool) {
	if a.Predicate != b.Predicate || len(a.Args) != len(b.Args) {
		return nil, false
	}
	cur := s
	for i := range a.Args {
		var ok bool
		cur, ok = Unify(a.Args[i], b.Args[i], cur)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Resolve substitutes every variable in t with its binding in s,
// recursively, producing a ground-or-partially-ground term for display.
func Resolve(t Term, s Subst) Term {
	t = walk(t, s)
	if t.IsVar() || len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = Resolve(a, s)
	}
	return Term{Name: t.Name, Args: args}
}

// ResolveAtom resolves every argument of a under s.
func ResolveAtom(a Atom, s Subst) Atom {
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = Resolve(t, s)
	}
	return Atom{Predicate: a.Predicate, Args: args}
}

// renameTerm returns a copy of t with every variable renamed via the given
// generation counter suffix, so that each clause use gets fresh variables
// (standard SLD variable-renaming requirement).
func renameTerm(t Term, gen int, seen map[string]Term) Term {
	if t.IsVar() {
		if r, ok := seen[t.Var]; ok {
			return r
		}
		fresh := Term{Var: t.Var + "#" + strconv.Itoa(gen)}
		seen[t.Var] = fresh
		return fresh
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = renameTerm(a, gen, seen)
	}
	return Term{Name: t.Name, Args: args}
}

func renameAtom(a Atom, gen int, seen map[string]Term) Atom {
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		args[i] = renameTerm(t, gen, seen)
	}
	return Atom{Predicate: a.Predicate, Args: args}
}

