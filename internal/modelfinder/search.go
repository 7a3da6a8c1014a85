package modelfinder

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/parser"
)

// Options configures one Find call.
type Options struct {
	DomainSize     int  // 0 means search, starting at 1
	MaxDomainSize  int  // default 10 if unset
	EnableSymmetry bool // lex-leader constant symmetry breaking, default true
	Count          int  // number of distinct models requested, default 1
	Deadline       time.Time

	// SATThreshold is the domain size at or above which predicate-extent
	// search is routed through the SAT engine instead of native
	// backtracking (spec.md §4.J "SAT-backed path"). 0 means the default
	// of 6.
	SATThreshold int
}

// DefaultOptions returns the spec.md §4.J defaults.
func DefaultOptions() Options {
	return Options{MaxDomainSize: 10, EnableSymmetry: true, Count: 1, SATThreshold: 6}
}

func (o Options) satThreshold() int {
	if o.SATThreshold <= 0 {
		return 6
	}
	return o.SATThreshold
}

// Result is the outcome of Find.
type Result struct {
	Found      bool
	Models     []*Model
	DomainSize int // the n at which search stopped
}

// Find searches domains of increasing size for a satisfying assignment to
// premises (spec.md §4.J). Free variables in any premise are skolemized to
// fresh constants before enumeration (Mace4 convention).
func Find(ctx context.Context, premises []string, opts Options) (*Result, error) {
	if opts.MaxDomainSize <= 0 {
		opts.MaxDomainSize = 10
	}
	if opts.Count <= 0 {
		opts.Count = 1
	}

	formulas := make([]ast.Node, 0, len(premises))
	for i, src := range premises {
		n, err := parser.Parse(src)
		if err != nil {
			return nil, err
		}
		formulas = append(formulas, skolemizeFreeVars(n, i))
	}

	sig := ast.MergeSignatures(sigsOf(formulas)...)

	start := 1
	end := opts.MaxDomainSize
	if opts.DomainSize > 0 {
		start, end = opts.DomainSize, opts.DomainSize
	}

	for n := start; n <= end; n++ {
		if deadlineExceeded(ctx, opts.Deadline) {
			return &Result{Found: false, DomainSize: n}, nil
		}
		s := newSearch(formulas, sig, n, opts)
		s.run(ctx)
		if len(s.found) > 0 {
			return &Result{Found: true, Models: s.found, DomainSize: n}, nil
		}
	}
	return &Result{Found: false, DomainSize: end}, nil
}

func sigsOf(formulas []ast.Node) []*ast.Signature {
	out := make([]*ast.Signature, 0, len(formulas))
	for _, f := range formulas {
		s, err := ast.NewSignature(f)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

// skolemizeFreeVars replaces every free variable in n with a fresh constant
// unique to formula index idx (spec.md §4.J step 6).
func skolemizeFreeVars(n ast.Node, idx int) ast.Node {
	free := ast.FreeVars(n)
	if len(free) == 0 {
		return n
	}
	names := make([]string, 0, len(free))
	for name := range free {
		names = append(names, name)
	}
	sort.Strings(names)
	rename := map[string]string{}
	for i, name := range names {
		rename[name] = skolemConstName(idx, i)
	}
	return ast.Walk(n, func(node ast.Node) ast.Node {
		if v, ok := node.(*ast.Variable); ok {
			if c, ok := rename[v.Name]; ok {
				return &ast.Constant{Name: c}
			}
		}
		return nil
	})
}

func skolemConstName(formulaIdx, varIdx int) string {
	return "mfsk_" + strconv.Itoa(formulaIdx) + "_" + strconv.Itoa(varIdx)
}

func deadlineExceeded(ctx context.Context, deadline time.Time) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}
