// Package horn maps a clause set onto the textual Horn rule/fact/goal form
// consumed by the SLD engine (spec.md §4.E). Skolem names become ground
// constants; uppercase-initial constants fold to lowercase; the variables
// the SLD engine must treat as logic variables are standardized "_vN"
// names and single-lowercase free-variable names (standardization renames
// every quantifier-bound name to the "_vN" form).
package horn

import (
	"strings"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

// Kind tags the translated form of one clause.
type Kind int

const (
	KindFact Kind = iota
	KindRule
	KindGoal
)

// Program is one translated clause: a fact, a rule with an ordered body, or
// an all-negative goal.
type Program struct {
	Kind Kind
	Head string   // Horn-syntax head literal, empty for a goal
	Body []string // Horn-syntax body literals, in order
}

// String renders p back into Prolog-ish concrete syntax, matching what the
// SLD engine's parser expects.
func (p Program) String() string {
	switch p.Kind {
	case KindFact:
		return p.Head + "."
	case KindRule:
		return p.Head + " :- " + strings.Join(p.Body, ", ") + "."
	default:
		return "?- " + strings.Join(p.Body, ", ") + "."
	}
}

// Translate converts clauses into Horn programs. Every clause must have at
// most one positive literal; a clause with two or more positive literals
// is rejected with EngineError (spec.md §4.E).
func Translate(clauses []clausify.Clause) ([]Program, error) {
	out := make([]Program, 0, len(clauses))
	for _, c := range clauses {
		p, err := translateOne(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func translateOne(c clausify.Clause) (Program, error) {
	var pos []clausify.Literal
	var neg []clausify.Literal
	for _, l := range c.Literals {
		if l.Negated {
			neg = append(neg, l)
		} else {
			pos = append(pos, l)
		}
	}
	switch {
	case len(pos) == 0:
		body := make([]string, len(neg))
		for i, l := range neg {
			body[i] = hornAtom(l)
		}
		return Program{Kind: KindGoal, Body: body}, nil
	case len(pos) == 1 && len(neg) == 0:
		return Program{Kind: KindFact, Head: hornAtom(pos[0])}, nil
	case len(pos) == 1:
		body := make([]string, len(neg))
		for i, l := range neg {
			body[i] = hornAtom(l)
		}
		return Program{Kind: KindRule, Head: hornAtom(pos[0]), Body: body}, nil
	default:
		return Program{}, errs.New(errs.CodeEngineError, "clause %q is not Horn: %d positive literals", c.String(), len(pos))
	}
}

func hornAtom(l clausify.Literal) string {
	args := make([]string, len(l.Args))
	for i, a := range l.Args {
		args[i] = hornTerm(a)
	}
	s := l.Predicate
	if len(args) > 0 {
		s += "(" + strings.Join(args, ",") + ")"
	}
	return s
}

// hornTerm rewrites one already-flattened term string into Horn/Prolog
// concrete syntax: a standardized "_vN" name or a single lowercase letter
// becomes a "V_"-prefixed logic variable; an uppercase-initial constant folds to lowercase; everything
// else (Skolem names, lowercase constants, compound terms) passes through
// unchanged except for recursive rewriting of nested arguments.
func hornTerm(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		name := s[:i]
		inner := s[i+1 : len(s)-1]
		args := splitArgs(inner)
		for i, a := range args {
			args[i] = hornTerm(a)
		}
		return foldConstant(name) + "(" + strings.Join(args, ",") + ")"
	}
	if isHornVariable(s) {
		return toUpperVar(s)
	}
	return foldConstant(s)
}

// IsHornVariable reports whether term name s should be rendered as a
// Horn-engine logic variable.
func isHornVariable(s string) bool {
	if strings.HasPrefix(s, "_v") {
		return true
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return true
	}
	return false
}

func toUpperVar(s string) string {
	return "V_" + s
}

func foldConstant(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return strings.ToLower(s[:1]) + s[1:]
	}
	return s
}

// CollectSignature walks already-clausified literals, collecting predicate
// and function arities for the equality axiomatizer (spec.md §4.H): the
// "=" predicate itself is skipped since it is handled separately, not
// congruence-closed over like a user predicate.
func CollectSignature(clauses []clausify.Clause) (predicates map[string]int, functions map[string]int) {
	predicates = map[string]int{}
	functions = map[string]int{}
	for _, c := range clauses {
		for _, l := range c.Literals {
			if l.Predicate != "=" {
				predicates[l.Predicate] = len(l.Args)
			}
			for _, a := range l.Args {
				collectFunctionArity(a, functions)
			}
		}
	}
	return predicates, functions
}

func collectFunctionArity(s string, out map[string]int) {
	i := strings.IndexByte(s, '(')
	if i < 0 || !strings.HasSuffix(s, ")") {
		return
	}
	args := splitArgs(s[i+1 : len(s)-1])
	out[s[:i]] = len(args)
	for _, a := range args {
		collectFunctionArity(a, out)
	}
}

func splitArgs(s string) []string {
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

// TranslateGoal converts the clause set produced by clausifying ¬goal into
// one or more Horn queries. Clausifying a disjunctive goal (e.g. `P | -P`)
// splits ¬goal across De Morgan into several clauses, and not every one of
// them is purely negative: a clause that keeps a positive literal is
// itself a fact or rule (exactly like a premise clause) that must be
// asserted before querying, not folded into the query body. The remaining
// all-negative clauses are the real queries; refuting premises ∧ ¬goal
// only requires refuting ONE of them, because an already-unsatisfiable
// conjunct (premises entail that clause's body) makes the whole
// conjunction unsatisfiable regardless of the other clauses. So the
// returned queries are alternatives, not one merged conjunctive body: the
// caller should try each in turn and treat any single success as proved.
func TranslateGoal(clauses []clausify.Clause) (queries []Program, extra []Program, err error) {
	if len(clauses) == 0 {
		return nil, nil, errs.New(errs.CodeEngineError, "goal has no literals after clausification")
	}
	for _, c := range clauses {
		p, err := translateOne(c)
		if err != nil {
			return nil, nil, err
		}
		if p.Kind == KindGoal {
			queries = append(queries, p)
		} else {
			extra = append(extra, p)
		}
	}
	if len(queries) == 0 {
		return nil, nil, errs.New(errs.CodeEngineError, "negated goal produced no queryable clause")
	}
	return queries, extra, nil
}
