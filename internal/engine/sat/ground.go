package sat

import (
	"sort"
	"strings"

	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

// Grounder maps ground literals to positive DIMACS integers and turns a
// first-order clause set into ground propositional clauses via Herbrand
// instantiation (spec.md §4.G step 4).
type Grounder struct {
	litToVar map[string]int32
	varToLit []string // 1-indexed; varToLit[0] unused
}

// NewGrounder returns an empty Grounder.
func NewGrounder() *Grounder {
	return &Grounder{litToVar: map[string]int32{}, varToLit: []string{""}}
}

// varFor returns the DIMACS variable for a ground atom key, allocating a
// fresh one if unseen.
func (g *Grounder) varFor(key string) int32 {
	if v, ok := g.litToVar[key]; ok {
		return v
	}
	v := int32(len(g.varToLit))
	g.varToLit = append(g.varToLit, key)
	g.litToVar[key] = v
	return v
}

// atomKey canonicalizes a ground literal's predicate+args into a map key.
func atomKey(predicate string, args []string) string {
	return predicate + "(" + strings.Join(args, ",") + ")"
}

// LiteralName returns the atom key for DIMACS variable v (1-indexed).
func (g *Grounder) LiteralName(v int32) string {
	if int(v) < 0 || int(v) >= len(g.varToLit) {
		return ""
	}
	return g.varToLit[v]
}

// NumVars reports how many distinct ground atoms have been allocated.
func (g *Grounder) NumVars() int { return len(g.varToLit) - 1 }

// constants collects every ground constant/function-result string
// appearing anywhere in clauses (the Herbrand universe), introducing a
// dummy constant if the set is empty (spec.md §4.G step 4).
func constants(clauses []clausify.Clause) []string {
	seen := map[string]bool{}
	for _, c := range clauses {
		for _, lit := range c.Literals {
			for _, a := range lit.Args {
				if !clausify.VarsInString(a) {
					seen[a] = true
				}
			}
		}
	}
	if len(seen) == 0 {
		seen["c0"] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GroundResult is the outcome of grounding a first-order clause set.
type GroundResult struct {
	Clauses           [][]int32
	Grounder          *Grounder
	UngroundedClauses int
}

// MaxGroundVars is the free-variable-count threshold above which a clause
// is left ungrounded rather than grounded, an explicit documented
// incompleteness (spec.md §9, §4.G step 4).
const MaxGroundVars = 3

// Ground instantiates every clause with |vars| <= MaxGroundVars over the
// Cartesian product of the Herbrand constants; clauses with more free
// variables are skipped and counted in UngroundedClauses rather than
// silently dropped without a trace.
func Ground(clauses []clausify.Clause) GroundResult {
	g := NewGrounder()
	consts := constants(clauses)
	var out [][]int32
	ungrounded := 0

	for _, c := range clauses {
		vars := clausify.VarsIn(c)
		if len(vars) > MaxGroundVars {
			ungrounded++
			continue
		}
		for _, assignment := range cartesian(consts, len(vars)) {
			subst := map[string]string{}
			for i, v := range vars {
				subst[v] = assignment[i]
			}
			ground := make([]int32, 0, len(c.Literals))
			for _, lit := range c.Literals {
				args := make([]string, len(lit.Args))
				for i, a := range lit.Args {
					args[i] = substitute(a, subst)
				}
				v := g.varFor(atomKey(lit.Predicate, args))
				if lit.Negated {
					v = -v
				}
				ground = append(ground, v)
			}
			out = append(out, ground)
		}
	}
	return GroundResult{Clauses: out, Grounder: g, UngroundedClauses: ungrounded}
}

// substitute replaces a variable occurrence with its Herbrand-constant
// binding; non-variable terms (constants, compound Skolem terms) pass
// through unchanged since their own variable arguments were already
// flattened by PrintTerm at clause-extraction time -- compound terms
// containing variables therefore need textual substitution too.
func substitute(term string, subst map[string]string) string {
	if v, ok := subst[term]; ok {
		return v
	}
	if !strings.ContainsAny(term, "(") {
		return term
	}
	// compound term: replace any variable-looking sub-token textually.
	out := term
	for v, c := range subst {
		out = replaceToken(out, v, c)
	}
	return out
}

// replaceToken replaces whole-token occurrences of name within a
// "f(a,name,g(name))"-shaped string, avoiding partial matches inside
// longer identifiers.
func replaceToken(s, name, repl string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], name) {
			end := i + len(name)
			before := i == 0 || isDelim(s[i-1])
			after := end == len(s) || isDelim(s[end])
			if before && after {
				b.WriteString(repl)
				i = end
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isDelim(b byte) bool {
	return b == '(' || b == ')' || b == ','
}

func cartesian(items []string, n int) [][]string {
	if n == 0 {
		return [][]string{{}}
	}
	var result [][]string
	var rec func(prefix []string)
	rec = func(prefix []string) {
		if len(prefix) == n {
			cp := append([]string(nil), prefix...)
			result = append(result, cp)
			return
		}
		for _, it := range items {
			rec(append(prefix, it))
		}
	}
	rec(nil)
	return result
}
