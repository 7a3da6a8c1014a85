// Package engine defines the shared result types and the Engine interface
// every reasoning backend (SLD, SAT, and any future SMT/ASP plugin)
// implements, plus the capability struct the manager uses for selection
// (spec.md §4.I, §9 "duck-typed engine polymorphism becomes a capability
// struct plus an interface").
package engine

import (
	"context"
	"time"

	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

// Verdict is the outcome of a prove call.
type Verdict string

const (
	Proved  Verdict = "proved"
	Failed  Verdict = "failed"
	ErrorV  Verdict = "error"
	Timeout Verdict = "timeout"
)

// ProveOptions configures one prove call across every backend.
type ProveOptions struct {
	MaxInferences    int
	Deadline         time.Time
	EnableEquality   bool
	EnableArithmetic bool
	IncludeTrace     bool
}

// ProveResult is the uniform result of a prove call, matching the tool
// surface contract of spec.md §6.
type ProveResult struct {
	Verdict        Verdict
	Bindings       map[string]string
	InferenceCount int
	HitLimit       bool
	Trace          []string
	EngineUsed     string
	Error          error
}

// Literal re-exports clausify.Literal for engine implementations.
type Literal = clausify.Literal

// SatResult is the uniform result of checkSat.
type SatResult struct {
	Sat        bool
	TrueVars   map[string]bool // satisfying assignment over ground-literal keys
	Statistics SatStats
}

// SatStats reports solver effort for diagnostics.
type SatStats struct {
	Decisions         int
	Conflicts         int
	Variables         int
	Clauses           int
	UngroundedClauses int
	TimeMs            int64
}

// Capabilities declares what one engine supports, used by the manager's
// selection algorithm.
type Capabilities struct {
	Name                string
	SupportsHorn        bool
	SupportsFullFOL     bool
	NativeEquality      bool
	NativeArithmetic    bool
	SupportsIncremental bool
}

// Session is a handle to an engine's persistent incremental state (used
// for assert/retract without replaying the full premise list every time).
type Session interface {
	Assert(ctx context.Context, clauses []clausify.Clause) error
	Retract(ctx context.Context, clauses []clausify.Clause) (bool, error)
	Close() error
}

// Engine is the capability-bearing interface every reasoning backend
// implements.
type Engine interface {
	Name() string
	Capabilities() Capabilities
	Prove(ctx context.Context, premises []clausify.Clause, goal []clausify.Clause, opts ProveOptions) (*ProveResult, error)
	CheckSat(ctx context.Context, clauses []clausify.Clause) (*SatResult, error)
	// CreateSession returns nil, ErrNoSessions if the engine does not
	// support incremental sessions.
	CreateSession(ctx context.Context) (Session, error)
	Close() error
}
