// Package sld implements the depth-bounded SLD resolution engine of
// spec.md §4.F: a Horn-clause resolution loop with an inference-step
// counter, support for asserting/retracting individual clauses, and an
// optional per-step trace.
package sld

import "strings"

// Term is the SLD engine's internal representation, reconstructed from the
// horn package's flattened "name(arg,arg)" strings so that unification can
// see structure (compound terms, Skolem functions) rather than comparing
// opaque strings.
type Term struct {
	Var      string // non-empty iff this is a logic variable
	Name     string // constant/functor name, meaningful iff Var == ""
	Args     []Term
}

func (t Term) IsVar() bool { return t.Var != "" }

func (t Term) String() string {
	if t.IsVar() {
		return t.Var
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ",") + ")"
}

// ParseTerm parses a Horn-syntax term string ("V_x", "f(a,V_y)", "skc1")
// into a Term. Names beginning with "V_" are variables (the convention
// produced by internal/fol/horn.hornTerm).
func ParseTerm(s string) Term {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		name := s[:i]
		inner := s[i+1 : len(s)-1]
		args := splitTopLevel(inner)
		parsed := make([]Term, len(args))
		for i, a := range args {
			parsed[i] = ParseTerm(a)
		}
		return Term{Name: name, Args: parsed}
	}
	if strings.HasPrefix(s, "V_") {
		return Term{Var: s}
	}
	return Term{Name: s}
}

func splitTopLevel(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// Atom is a predicate applied to Terms. It has no polarity: goal literals
// are always queried positively against rule/fact heads.
type Atom struct {
	Predicate string
	Args      []Term
}

func (a Atom) String() string {
	if len(a.Args) == 0 {
		return a.Predicate
	}
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return a.Predicate + "(" + strings.Join(parts, ",") + ")"
}

// ParseAtom parses a Horn-syntax atom "pred(arg,arg)" into an Atom.
func ParseAtom(s string) Atom {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '('); i >= 0 && strings.HasSuffix(s, ")") {
		name := s[:i]
		inner := s[i+1 : len(s)-1]
		args := splitTopLevel(inner)
		parsed := make([]Term, len(args))
		for i, a := range args {
			parsed[i] = ParseTerm(a)
		}
		return Atom{Predicate: name, Args: parsed}
	}
	return Atom{Predicate: s}
}
