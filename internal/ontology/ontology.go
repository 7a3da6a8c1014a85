// Package ontology expands synonym predicate/constant names within a
// session to their canonical form before assertion, backed by a small
// google/mangle Datalog program (spec.md §4.I "Session orchestration":
// "expands ontology synonyms if an ontology is present").
package ontology

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
	"github.com/google/mangle/unionfind"
)

// schema declares the synonym/canonical relation: canonical(X,Y) holds
// whenever X and Y denote the same symbol, in either synonym direction.
const schema = `
Decl synonym(X, Y)
  descr[mode('+', '+')].
Decl canonical(X, Y)
  descr[mode('+', '+')].

canonical(X, Y) :- synonym(X, Y).
canonical(X, Y) :- synonym(Y, X).
`

// Ontology holds a session's synonym table and resolves a surface name to
// its canonical form.
type Ontology struct {
	mu          sync.Mutex
	store       factstore.ConcurrentFactStore
	programInfo *analysis.ProgramInfo
	queryCtx    *mengine.QueryContext
}

// New builds an empty Ontology with the synonym/canonical schema loaded.
func New() (*Ontology, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(schema)))
	if err != nil {
		return nil, fmt.Errorf("parse ontology schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(parse.SourceUnit{Clauses: unit.Clauses, Decls: unit.Decls}, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze ontology schema: %w", err)
	}

	predToDecl := make(map[ast.PredicateSym]*ast.Decl, len(programInfo.Decls))
	for sym, decl := range programInfo.Decls {
		predToDecl[sym] = decl
	}
	predToRules := make(map[ast.PredicateSym][]ast.Clause)
	for _, clause := range programInfo.Rules {
		predToRules[clause.Head.Predicate] = append(predToRules[clause.Head.Predicate], clause)
	}

	store := factstore.NewConcurrentFactStore(factstore.NewSimpleInMemoryStore())
	return &Ontology{
		store:       store,
		programInfo: programInfo,
		queryCtx: &mengine.QueryContext{
			PredToRules: predToRules,
			PredToDecl:  predToDecl,
			Store:       store,
		},
	}, nil
}

// AddSynonym declares word and canonical as denoting the same symbol.
func (o *Ontology) AddSynonym(word, canonical string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	atom := ast.Atom{
		Predicate: ast.PredicateSym{Symbol: "synonym", Arity: 2},
		Args:      []ast.BaseTerm{ast.String(word), ast.String(canonical)},
	}
	o.store.Add(atom)
	_, err := mengine.EvalProgramWithStats(o.programInfo, o.store)
	return err
}

// Canonical returns the canonical form of name, or name itself (found=false)
// if no synonym is declared for it.
func (o *Ontology) Canonical(ctx context.Context, name string) (canonical string, found bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sym := ast.PredicateSym{Symbol: "canonical", Arity: 2}
	queryAtom := ast.Atom{
		Predicate: sym,
		Args:      []ast.BaseTerm{ast.String(name), ast.Variable{Symbol: "Y"}},
	}
	decl, ok := o.queryCtx.PredToDecl[sym]
	if !ok || len(decl.Modes()) == 0 {
		return name, false, nil
	}
	mode := decl.Modes()[0]

	var result string
	evalErr := o.queryCtx.EvalQuery(queryAtom, mode, unionfind.New(), func(fact ast.Atom) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if len(fact.Args) == 2 {
			if s, ok := fact.Args[1].(ast.Constant); ok {
				result = s.Symbol
			}
		}
		return nil
	})
	if evalErr != nil {
		return name, false, evalErr
	}
	if result == "" {
		return name, false, nil
	}
	return result, true, nil
}

// ExpandPredicates rewrites every name in names to its canonical form
// where a synonym is declared, leaving unmapped names untouched.
func (o *Ontology) ExpandPredicates(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, n := range names {
		canon, found, err := o.Canonical(ctx, n)
		if err != nil {
			return nil, err
		}
		if found {
			out[n] = canon
		}
	}
	return out, nil
}
