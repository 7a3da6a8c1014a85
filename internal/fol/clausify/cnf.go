package clausify

import (
	"time"

	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
)

// distributeState carries the abort timeout and the clause-size limit
// across a Distribute call. CNF distribution recurses over the tree (run
// and distributeOr call themselves); it does not use an explicit work
// stack, so nesting depth is bounded by the Go call stack. maxClauseSize is
// stored but not checked here; Clausify checks clause sizes after
// extraction.
type distributeState struct {
	deadline      time.Time
	maxClauseSize int
}

// Distribute recursively distributes OR over AND until n (already NNF,
// standardized, Skolemized, universals-dropped) is a conjunction of
// disjunctions of literals, gated by an abort timeout (spec.md §4.D
// stage 5).
func Distribute(n ast.Node, timeout time.Duration, maxClauseSize int) (ast.Node, error) {
	st := &distributeState{deadline: time.Now().Add(timeout), maxClauseSize: maxClauseSize}
	return st.run(n)
}

// run walks n bottom-up: AND nodes pass through unchanged, OR nodes have
// both sides reduced first and are then pushed inward by distributeOr so
// that by the time a parent AND sees its children, they are already in CNF.
func (st *distributeState) run(n ast.Node) (ast.Node, error) {
	if time.Now().After(st.deadline) {
		return nil, errs.New(errs.CodeClausificationError, "CNF distribution exceeded its timeout")
	}
	switch t := n.(type) {
	case *ast.And:
		l, err := st.run(t.L)
		if err != nil {
			return nil, err
		}
		r, err := st.run(t.R)
		if err != nil {
			return nil, err
		}
		return &ast.And{L: l, R: r}, nil
	case *ast.Or:
		l, err := st.run(t.L)
		if err != nil {
			return nil, err
		}
		r, err := st.run(t.R)
		if err != nil {
			return nil, err
		}
		return st.distributeOr(l, r)
	default:
		return n, nil
	}
}

// distributeOr combines l | r, pushing the OR inside any AND found on
// either side: (A&B)|C == (A|C)&(B|C).
func (st *distributeState) distributeOr(l, r ast.Node) (ast.Node, error) {
	if time.Now().After(st.deadline) {
		return nil, errs.New(errs.CodeClausificationError, "CNF distribution exceeded its timeout")
	}
	if and, ok := l.(*ast.And); ok {
		left, err := st.distributeOr(and.L, r)
		if err != nil {
			return nil, err
		}
		right, err := st.distributeOr(and.R, r)
		if err != nil {
			return nil, err
		}
		return &ast.And{L: left, R: right}, nil
	}
	if and, ok := r.(*ast.And); ok {
		left, err := st.distributeOr(l, and.L)
		if err != nil {
			return nil, err
		}
		right, err := st.distributeOr(l, and.R)
		if err != nil {
			return nil, err
		}
		return &ast.And{L: left, R: right}, nil
	}
	return &ast.Or{L: l, R: r}, nil
}
