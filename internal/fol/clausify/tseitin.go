package clausify

import (
	"fmt"

	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// tseitinState allocates one fresh propositional variable per non-atomic
// sub-formula and accumulates the equivalence clauses that tie each
// auxiliary variable to its sub-formula's truth value.
type tseitinState struct {
	counter int
	clauses []Clause
}

// Tseitin converts n (NNF, standardized, Skolemized, universals dropped)
// into a clause set whose size is linear in the number of sub-formulas,
// trading the standard strategy's potential exponential blowup for a
// constant number of auxiliary variables per connective (spec.md §4.D
// stage 6). The returned top-level clause asserts the root auxiliary
// variable true.
func Tseitin(n ast.Node) []Clause {
	st := &tseitinState{}
	root := st.convert(n)
	st.clauses = append(st.clauses, Clause{Literals: []Literal{pos(root)}})
	return st.clauses
}

// convert returns the name of the propositional literal equivalent to n,
// which is either an existing literal (for atoms) or a fresh "aux_k"
// variable whose defining clauses have been appended to st.clauses.
func (st *tseitinState) convert(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Predicate:
		lit := Literal{Predicate: t.Name, Negated: t.Neg}
		for _, a := range t.Args {
			lit.Args = append(lit.Args, PrintTerm(a))
		}
		return st.literalAuxName(lit)
	case *ast.And:
		a := st.convert(t.L)
		b := st.convert(t.R)
		aux := st.fresh()
		// aux <-> (a & b)
		st.clauses = append(st.clauses,
			clauseOf(neg(aux), pos(a)),
			clauseOf(neg(aux), pos(b)),
			clauseOf(pos(aux), neg(a), neg(b)),
		)
		return aux
	case *ast.Or:
		a := st.convert(t.L)
		b := st.convert(t.R)
		aux := st.fresh()
		// aux <-> (a | b)
		st.clauses = append(st.clauses,
			clauseOf(neg(aux), pos(a), pos(b)),
			clauseOf(pos(aux), neg(a)),
			clauseOf(pos(aux), neg(b)),
		)
		return aux
	default:
		// Not/Implies/Iff never reach here once ToNNF has run; fall back to
		// a literal encoding of the atom's printed form for robustness.
		return st.literalAuxName(Literal{Predicate: n.String()})
	}
}

// literalAuxName returns an auxiliary-free name for an atomic literal: the
// literal prints directly as a Horn/SAT-ready token, so no auxiliary
// variable is introduced for atoms themselves, only for connectives.
func (st *tseitinState) literalAuxName(lit Literal) string {
	name := lit.String()
	return name
}

func (st *tseitinState) fresh() string {
	st.counter++
	return fmt.Sprintf("aux_%d", st.counter)
}

func pos(name string) Literal { return parseAuxLiteral(name, false) }
func neg(name string) Literal { return parseAuxLiteral(name, true) }

// parseAuxLiteral turns a name produced by convert (either "aux_k" or a
// printed literal like "-P(a)") back into a Literal, applying an extra
// negation when wantNeg is requested by flipping the already-encoded sign.
func parseAuxLiteral(name string, wantNeg bool) Literal {
	negated := false
	if len(name) > 0 && name[0] == '-' {
		negated = true
		name = name[1:]
	}
	if wantNeg {
		negated = !negated
	}
	pred, args := splitPred(name)
	return Literal{Predicate: pred, Args: args, Negated: negated}
}

func splitPred(s string) (string, []string) {
	i := indexByte(s, '(')
	if i < 0 {
		return s, nil
	}
	name := s[:i]
	inner := s[i+1 : len(s)-1]
	if inner == "" {
		return name, nil
	}
	return name, splitArgs(inner)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// splitArgs splits a comma-separated argument list respecting nested
// parentheses (so "g(a,c),b" splits into ["g(a,c)", "b"]; the comma inside
// g's parentheses is not a split point).
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

func clauseOf(lits ...Literal) Clause {
	return Clause{Literals: lits}
}
