// Package session implements the reasoning service's Session data model
// and lifecycle (spec.md §3 "Session", §4.I "Session orchestration"):
// premises are the source of truth for a session, engine state is just a
// cache that can always be rebuilt by replaying them in order.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/fol/parser"
	"github.com/logos-reasoner/logos/internal/ontology"
)

// Session is one client's persistent reasoning context. Premises is the
// source of truth; EngineSession/EngineName are a cache reconstructible by
// replaying Premises in order.
type Session struct {
	ID             string
	Premises       []string
	EngineSession  engine.Session
	EngineName     string
	CreatedAt      time.Time
	LastAccessedAt time.Time
	TTL            time.Duration
	Ontology       *ontology.Ontology

	mgr *manager.Manager
	mu  sync.Mutex // per-session FIFO lock: assert/retract/clear/query serialize here
}

// touch updates LastAccessedAt; callers hold mu.
func (s *Session) touch() { s.LastAccessedAt = time.Now() }

// Expired reports whether the session should be reaped.
func (s *Session) Expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.LastAccessedAt.Add(s.TTL))
}

// AssertPremise validates, ontology-expands, and adds formula as a new
// premise (spec.md §4.I): incremental assert is attempted first; if the
// engine session can't accept it incrementally (wrong shape, or none yet
// exists), the manager rebuilds by replaying every premise against a
// freshly selected engine.
func (s *Session) AssertPremise(ctx context.Context, formula string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	canonical, err := s.expand(ctx, formula)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(canonical); err != nil {
		return err
	}

	if s.EngineSession != nil {
		clauses, err := clausify.ClausifyAll([]clausify.Input{clausify.FromText(canonical)}, s.mgr.Options())
		if err == nil {
			if err := s.EngineSession.Assert(ctx, clauses.Clauses); err == nil {
				s.Premises = append(s.Premises, canonical)
				return nil
			}
		}
	}

	s.Premises = append(s.Premises, canonical)
	return s.rebuild(ctx)
}

// RetractPremise removes the first premise with byte-identical source text
// (spec.md §4.G "retract requires byte-identical source formula"). It
// tries the engine session's incremental retract first, rebuilding only on
// failure or when no incremental session exists.
func (s *Session) RetractPremise(ctx context.Context, formula string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	idx := -1
	for i, p := range s.Premises {
		if p == formula {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	if s.EngineSession != nil {
		clauses, err := clausify.ClausifyAll([]clausify.Input{clausify.FromText(formula)}, s.mgr.Options())
		if err == nil {
			if removed, err := s.EngineSession.Retract(ctx, clauses.Clauses); err == nil && removed {
				s.Premises = append(s.Premises[:idx], s.Premises[idx+1:]...)
				return true, nil
			}
		}
	}

	s.Premises = append(s.Premises[:idx], s.Premises[idx+1:]...)
	return true, s.rebuild(ctx)
}

// Clear removes every premise and closes the current engine session.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	s.Premises = nil
	return s.closeEngineSessionLocked()
}

// ListPremises returns a snapshot of the session's current premise list.
func (s *Session) ListPremises() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	out := make([]string, len(s.Premises))
	copy(out, s.Premises)
	return out
}

// Prove proves goal against the session's current premises without
// mutating the session.
func (s *Session) Prove(ctx context.Context, goal string, opts engine.ProveOptions) (*engine.ProveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	premises := make([]clausify.Input, len(s.Premises))
	for i, p := range s.Premises {
		premises[i] = clausify.FromText(p)
	}
	return s.mgr.Prove(ctx, manager.ProveRequest{
		Premises: premises,
		Goal:     clausify.FromText(goal),
		Options:  opts,
	})
}

// expand rewrites every predicate name in formula to its ontology
// canonical form (spec.md §4.I "expands ontology synonyms if an ontology
// is present"); with no ontology attached, formula passes through
// unchanged.
func (s *Session) expand(ctx context.Context, formula string) (string, error) {
	if s.Ontology == nil {
		return formula, nil
	}
	n, err := parser.Parse(formula)
	if err != nil {
		return "", err
	}

	names := ast.PredicatesUsed(n)
	nameList := make([]string, 0, len(names))
	for name := range names {
		nameList = append(nameList, name)
	}
	rewrite, err := s.Ontology.ExpandPredicates(ctx, nameList)
	if err != nil {
		return "", err
	}
	if len(rewrite) == 0 {
		return formula, nil
	}

	n = ast.Walk(n, func(node ast.Node) ast.Node {
		if p, ok := node.(*ast.Predicate); ok {
			if canon, ok := rewrite[p.Name]; ok {
				p.Name = canon
			}
		}
		return nil
	})
	return n.String(), nil
}

// rebuild closes the current engine session (if any), re-scores the
// engine for the full premise list, creates a fresh session, and replays
// every premise into it (spec.md §4.I "the manager rebuilds").
func (s *Session) rebuild(ctx context.Context) error {
	if err := s.closeEngineSessionLocked(); err != nil {
		return err
	}
	if len(s.Premises) == 0 {
		return nil
	}

	name := s.mgr.SelectEngineForPremises(s.premiseInputs())
	sess, err := s.mgr.CreateSession(ctx, name)
	if err != nil {
		return err
	}

	all := s.premiseInputs()
	res, err := clausify.ClausifyAll(all, s.mgr.Options())
	if err != nil {
		sess.Close()
		return err
	}
	if err := sess.Assert(ctx, res.Clauses); err != nil {
		sess.Close()
		return errs.New(errs.CodeEngineError, "rebuild failed: %v", err)
	}

	s.EngineSession = sess
	s.EngineName = name
	return nil
}

func (s *Session) premiseInputs() []clausify.Input {
	out := make([]clausify.Input, len(s.Premises))
	for i, p := range s.Premises {
		out[i] = clausify.FromText(p)
	}
	return out
}

func (s *Session) closeEngineSessionLocked() error {
	if s.EngineSession == nil {
		return nil
	}
	err := s.EngineSession.Close()
	s.EngineSession = nil
	s.EngineName = ""
	return err
}
