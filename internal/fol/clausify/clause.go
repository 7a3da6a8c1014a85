package clausify

import (
	"sort"
	"strings"

	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// Literal is a flattened predicate application with its arguments printed
// by the canonical term printer, so clause-level equality reduces to
// string comparison while terms themselves retain full nesting.
type Literal struct {
	Predicate string
	Args      []string
	Negated   bool
}

// String renders a literal back into Prover9-style surface syntax.
func (l Literal) String() string {
	s := l.Predicate
	if len(l.Args) > 0 {
		s += "(" + strings.Join(l.Args, ",") + ")"
	}
	if l.Negated {
		s = "-" + s
	}
	return s
}

// Clause is a disjunction of literals; an empty Clause denotes the empty
// clause (⊥).
type Clause struct {
	Literals []Literal
	Origin   string // optional: "premise", "goal", or a user-supplied tag
}

func (c Clause) String() string {
	if len(c.Literals) == 0 {
		return "#"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " | ")
}

// IsEmpty reports whether c is the empty clause.
func (c Clause) IsEmpty() bool { return len(c.Literals) == 0 }

// IsTautology reports whether c contains a literal and its negation.
func (c Clause) IsTautology() bool {
	for i, a := range c.Literals {
		for j, b := range c.Literals {
			if i == j {
				continue
			}
			if a.Predicate == b.Predicate && a.Negated != b.Negated && sameArgs(a.Args, b.Args) {
				return true
			}
		}
	}
	return false
}

func sameArgs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PrintTerm is the canonical term printer used to flatten a term node to a
// string: nested function applications keep their structure, e.g.
// "f(g(a),X1)".
func PrintTerm(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Variable:
		return t.Name
	case *ast.Constant:
		return t.Name
	case *ast.Function:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = PrintTerm(a)
		}
		return t.Name + "(" + strings.Join(args, ",") + ")"
	default:
		return n.String()
	}
}

// FilterTautologies drops every clause in cs that is a tautology (spec.md
// §4.D stage 8).
func FilterTautologies(cs []Clause) []Clause {
	out := make([]Clause, 0, len(cs))
	for _, c := range cs {
		if !c.IsTautology() {
			out = append(out, c)
		}
	}
	return out
}

// VarsIn returns the variable names occurring in a clause's literal
// arguments (top-level arguments that isVarLike accepts: standardized "_v"
// names or single lowercase letters), sorted for determinism.
func VarsIn(c Clause) []string {
	seen := map[string]bool{}
	for _, lit := range c.Literals {
		for _, a := range lit.Args {
			if isVarLike(a) {
				seen[a] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// VarsInString reports whether a flattened term string is a variable
// occurrence under the standardized/free-variable convention (exported so
// the SAT grounding path can classify individual argument strings).
func VarsInString(s string) bool { return isVarLike(s) }

// isVarLike matches the standardized variable convention: names beginning
// with "_v" (standardizer output) or a single lowercase letter (free-
// variable convention), as used by the SAT grounding path (spec.md §4.G
// step 4).
func isVarLike(s string) bool {
	if strings.HasPrefix(s, "_v") {
		return true
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return true
	}
	return false
}
