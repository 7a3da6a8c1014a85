// Package clausify implements the spec.md §4.D pipeline: NNF, variable
// standardization, Skolemization, quantifier dropping, CNF distribution (or
// the linear-size Tseitin strategy), clause extraction, and the tautology
// filter. A single entry point accepts either raw formula text or an
// already-parsed AST, resolving the "two incompatible clausifier APIs"
// issue noted in spec.md §9.
package clausify

import (
	"time"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/parser"
)

// Strategy selects the CNF-production stage.
type Strategy string

const (
	StrategyStandard Strategy = "standard" // CNF distribution
	StrategyTseitin  Strategy = "tseitin"  // linear-size auxiliary variables
)

// Options bounds and configures one Clausify call.
type Options struct {
	Strategy      Strategy
	Timeout       time.Duration
	MaxClauses    int
	MaxClauseSize int
}

// DefaultOptions returns sane bounds for interactive use.
func DefaultOptions() Options {
	return Options{
		Strategy:      StrategyStandard,
		Timeout:       5 * time.Second,
		MaxClauses:    50000,
		MaxClauseSize: 64,
	}
}

// Input is either raw source text or a pre-parsed AST; exactly one of the
// two accessors below returns non-zero.
type Input struct {
	Text string
	AST  ast.Node
}

// FromText builds an Input from formula text.
func FromText(s string) Input { return Input{Text: s} }

// FromAST builds an Input from an already-parsed formula.
func FromAST(n ast.Node) Input { return Input{AST: n} }

func (in Input) resolve() (ast.Node, error) {
	if in.AST != nil {
		return in.AST, nil
	}
	return parser.Parse(in.Text)
}

// AsNode resolves in to its AST, parsing Text if necessary; exported so
// callers (the manager, building ¬goal) can manipulate the tree before
// clausification.
func (in Input) AsNode() (ast.Node, error) { return in.resolve() }

// Stats reports clausification metrics (spec.md §4.D).
type Stats struct {
	OriginalSize      int
	ClauseCount       int
	MaxClauseSize     int
	TimeMs            int64
	UngroundedClauses int // never set by this package or by the SAT grounding stage
}

// Result bundles the clause set, Skolem environment, and statistics.
type Result struct {
	Clauses []Clause
	Skolem  *Env
	Stats   Stats
}

// Clausify runs the full pipeline on in and returns the resulting clause
// set. A single Skolem environment is threaded through one call so
// multiple conjoined formulas (e.g. premises ∧ ¬goal) share one symbol
// space.
func Clausify(in Input, opts Options) (*Result, error) {
	start := time.Now()
	n, err := in.resolve()
	if err != nil {
		return nil, err
	}
	originalSize := ast.NodeCount(n)

	n = ToNNF(n)
	n = Standardize(n)
	n, env := Skolemize(n)
	n = DropUniversals(n)

	var clauses []Clause
	switch opts.Strategy {
	case StrategyTseitin:
		clauses = Tseitin(n)
	default:
		cnf, err := Distribute(n, opts.Timeout, opts.MaxClauseSize)
		if err != nil {
			return nil, err
		}
		clauses = extractClauses(cnf)
	}

	clauses = FilterTautologies(clauses)

	if opts.MaxClauses > 0 && len(clauses) > opts.MaxClauses {
		return nil, errs.New(errs.CodeClausificationBlowup, "clausification produced %d clauses, exceeding the limit of %d", len(clauses), opts.MaxClauses).
			WithDetail("clauseCount", len(clauses))
	}

	maxSize := 0
	for _, c := range clauses {
		if opts.MaxClauseSize > 0 && len(c.Literals) > opts.MaxClauseSize {
			return nil, errs.New(errs.CodeClausificationBlowup, "a clause exceeded the maximum clause size of %d", opts.MaxClauseSize)
		}
		if len(c.Literals) > maxSize {
			maxSize = len(c.Literals)
		}
	}

	return &Result{
		Clauses: clauses,
		Skolem:  env,
		Stats: Stats{
			OriginalSize:  originalSize,
			ClauseCount:   len(clauses),
			MaxClauseSize: maxSize,
			TimeMs:        time.Since(start).Milliseconds(),
		},
	}, nil
}

// ClausifyAll conjoins every formula in ins (e.g. premises plus a negated
// goal) and clausifies them together under one Skolem environment.
func ClausifyAll(ins []Input, opts Options) (*Result, error) {
	var combined ast.Node
	totalOriginal := 0
	for _, in := range ins {
		n, err := in.resolve()
		if err != nil {
			return nil, err
		}
		totalOriginal += ast.NodeCount(n)
		if combined == nil {
			combined = n
		} else {
			combined = &ast.And{L: combined, R: n}
		}
	}
	if combined == nil {
		return &Result{Stats: Stats{}}, nil
	}
	res, err := Clausify(FromAST(combined), opts)
	if err != nil {
		return nil, err
	}
	res.Stats.OriginalSize = totalOriginal
	return res, nil
}

// ClausifySplit clausifies premises and a negated goal under one shared
// Skolem environment but keeps their resulting clause sets apart: the Horn
// translator and the manager's session orchestration both need to know
// which clauses are the rule base and which are the query (spec.md §4.G
// steps 1-2, "Build AST ⋀premises ∧ ¬goal. Clausify with a single Skolem
// environment").
func ClausifySplit(premises []Input, negatedGoal Input, opts Options) (premisesClauses, goalClauses []Clause, env *Env, err error) {
	env = newEnv()
	premisesClauses, err = clausifyBranch(premises, env, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	goalClauses, err = clausifyBranch([]Input{negatedGoal}, env, opts)
	if err != nil {
		return nil, nil, nil, err
	}
	return premisesClauses, goalClauses, env, nil
}

// clausifyBranch conjoins ins and runs the pipeline stages after NNF
// through clause extraction, threading the given Env rather than
// allocating a fresh one.
func clausifyBranch(ins []Input, env *Env, opts Options) ([]Clause, error) {
	var combined ast.Node
	for _, in := range ins {
		n, err := in.resolve()
		if err != nil {
			return nil, err
		}
		if combined == nil {
			combined = n
		} else {
			combined = &ast.And{L: combined, R: n}
		}
	}
	if combined == nil {
		return nil, nil
	}

	n := ToNNF(combined)
	n = Standardize(n)
	n = SkolemizeWithEnv(n, env)
	n = DropUniversals(n)

	var clauses []Clause
	switch opts.Strategy {
	case StrategyTseitin:
		clauses = Tseitin(n)
	default:
		cnf, err := Distribute(n, opts.Timeout, opts.MaxClauseSize)
		if err != nil {
			return nil, err
		}
		clauses = extractClauses(cnf)
	}
	return FilterTautologies(clauses), nil
}

// extractClauses flattens an AND-of-OR-of-literal tree into a Clause slice
// (spec.md §4.D stage 7).
func extractClauses(n ast.Node) []Clause {
	var clauses []Clause
	var walkAnd func(ast.Node)
	walkAnd = func(n ast.Node) {
		if and, ok := n.(*ast.And); ok {
			walkAnd(and.L)
			walkAnd(and.R)
			return
		}
		clauses = append(clauses, Clause{Literals: extractLiterals(n)})
	}
	walkAnd(n)
	return clauses
}

func extractLiterals(n ast.Node) []Literal {
	var lits []Literal
	var walkOr func(ast.Node)
	walkOr = func(n ast.Node) {
		if or, ok := n.(*ast.Or); ok {
			walkOr(or.L)
			walkOr(or.R)
			return
		}
		if p, ok := n.(*ast.Predicate); ok {
			lit := Literal{Predicate: p.Name, Negated: p.Neg}
			for _, a := range p.Args {
				lit.Args = append(lit.Args, PrintTerm(a))
			}
			lits = append(lits, lit)
			return
		}
		// unreachable for well-formed input post-NNF/Skolemize/Distribute
	}
	walkOr(n)
	return lits
}
