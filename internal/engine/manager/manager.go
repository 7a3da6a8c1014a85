package manager

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/engine/sat"
	"github.com/logos-reasoner/logos/internal/engine/sld"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/ast"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/fol/horn"
)

// factory builds one engine instance. The Manager calls it lazily, under
// mu, for the shared instance of each engine name (rebuilt after Close),
// and once more for every CreateSession call (spec.md §4.I "engines are
// lazily instantiated").
type factory func() engine.Engine

// Manager owns the capability table, lazily-instantiated engine instances,
// and the selection/race/session-orchestration logic of spec.md §4.I.
type Manager struct {
	mu        sync.Mutex
	factories map[string]factory
	instances map[string]engine.Engine
	opts      clausify.Options
}

// New returns a Manager with the horn and sat engines registered (smt/asp
// are reserved names with no factory, so getEngines() never lists them).
func New(opts clausify.Options) *Manager {
	m := &Manager{
		factories: map[string]factory{
			EngineHorn: func() engine.Engine { return sld.New() },
			EngineSAT:  func() engine.Engine { return sat.New() },
		},
		instances: map[string]engine.Engine{},
		opts:      opts,
	}
	return m
}

// engineFor lazily instantiates (once) and returns the named engine.
func (m *Manager) engineFor(name string) (engine.Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.instances[name]; ok {
		return inst, true
	}
	f, ok := m.factories[name]
	if !ok {
		return nil, false
	}
	inst := f()
	m.instances[name] = inst
	return inst, true
}

// EngineInfo is one row of getEngines().
type EngineInfo struct {
	Name         string
	Capabilities engine.Capabilities
}

// GetEngines reports every known engine's capabilities, instantiating each
// lazily if it has not been used yet.
func (m *Manager) GetEngines() []EngineInfo {
	out := make([]EngineInfo, 0, len(PreferenceOrder))
	for _, name := range PreferenceOrder {
		inst, ok := m.engineFor(name)
		if !ok {
			continue
		}
		out = append(out, EngineInfo{Name: name, Capabilities: inst.Capabilities()})
	}
	return out
}

// Close releases every lazily-instantiated engine.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result error
	for _, inst := range m.instances {
		if err := inst.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	m.instances = map[string]engine.Engine{}
	return result
}

// ProveRequest bundles one prove call's inputs; EngineHint forces a
// specific engine name, empty means auto-select; Race dispatches to every
// capable engine concurrently (spec.md §4.I race mode).
type ProveRequest struct {
	Premises   []clausify.Input
	Goal       clausify.Input
	Options    engine.ProveOptions
	EngineHint string
	Race       bool
}

// Prove clausifies premises and ¬goal under one shared Skolem environment,
// detects the problem shape, then either dispatches to a single selected
// engine (auto mode) or races every capable engine (race mode).
func (m *Manager) Prove(ctx context.Context, req ProveRequest) (*engine.ProveResult, error) {
	premisesClauses, goalClauses, shape, err := m.prepare(req.Premises, req.Goal)
	if err != nil {
		return nil, err
	}

	if req.Race {
		return m.race(ctx, premisesClauses, goalClauses, shape, req.Options)
	}

	if req.EngineHint != "" {
		eng, ok := m.engineFor(req.EngineHint)
		if !ok {
			return nil, errs.New(errs.CodeEngineError, "unknown engine %q", req.EngineHint)
		}
		return eng.Prove(ctx, premisesClauses, goalClauses, req.Options)
	}

	ranked := m.rankEngines(shape)
	if len(ranked) == 0 {
		// No engine scores non-negative for this shape (e.g. neither engine
		// natively supports a required feature); fall back to the
		// best-effort choice rather than refusing to even try.
		if best := m.selectEngine(shape); best != "" {
			ranked = []string{best}
		} else {
			return nil, errs.New(errs.CodeEngineError, "no engine capable of this problem shape")
		}
	}
	if len(ranked) > 2 {
		ranked = ranked[:2] // fall back to the next-highest-scoring engine once; repeated failure surfaces (spec.md §4.I)
	}
	var aggregate error
	for _, name := range ranked {
		eng, ok := m.engineFor(name)
		if !ok {
			continue
		}
		result, err := eng.Prove(ctx, premisesClauses, goalClauses, req.Options)
		if err == nil {
			return result, nil
		}
		aggregate = multierror.Append(aggregate, err)
	}
	return nil, aggregate
}

// prepare clausifies premises and ¬goal together (shared Skolem env) and
// classifies the resulting problem shape for the selection algorithm.
func (m *Manager) prepare(premises []clausify.Input, goal clausify.Input) (premisesClauses, goalClauses []clausify.Clause, shape problemShape, err error) {
	goalAST, err := goal.AsNode()
	if err != nil {
		return nil, nil, shape, err
	}
	negatedGoal := clausify.FromAST(&ast.Not{E: goalAST})

	premisesClauses, goalClauses, _, err = clausify.ClausifySplit(premises, negatedGoal, m.opts)
	if err != nil {
		return nil, nil, shape, err
	}

	all := append(append([]clausify.Clause(nil), premisesClauses...), goalClauses...)
	shape.hasArithmetic = hasArithmetic(all)
	shape.hasEquality = hasEquality(all)
	_, hornErr := horn.Translate(all)
	shape.isHorn = hornErr == nil
	return premisesClauses, goalClauses, shape, nil
}

func hasArithmetic(clauses []clausify.Clause) bool {
	for _, c := range clauses {
		for _, l := range c.Literals {
			if ast.IsArithmeticPredicate(l.Predicate) {
				return true
			}
		}
	}
	return false
}

func hasEquality(clauses []clausify.Clause) bool {
	for _, c := range clauses {
		for _, l := range c.Literals {
			if l.Predicate == "=" {
				return true
			}
		}
	}
	return false
}

// selectEngine implements spec.md §4.I step 3-4: score every known engine
// against the problem shape and pick the highest, ties broken by
// PreferenceOrder.
func (m *Manager) selectEngine(shape problemShape) string {
	best := ""
	bestScore := -1 << 30
	for _, name := range PreferenceOrder {
		inst, ok := m.engineFor(name)
		if !ok {
			continue
		}
		s := score(name, inst.Capabilities(), shape)
		if s > bestScore {
			bestScore = s
			best = name
		}
	}
	return best
}

// rankEngines scores every instantiable known engine against shape and
// returns the capable ones (score >= 0) sorted highest-first, ties broken
// by PreferenceOrder -- the auto-mode fallback order of spec.md §4.I.
func (m *Manager) rankEngines(shape problemShape) []string {
	type scored struct {
		name string
		pos  int
		s    int
	}
	var candidates []scored
	for i, name := range PreferenceOrder {
		inst, ok := m.engineFor(name)
		if !ok {
			continue
		}
		s := score(name, inst.Capabilities(), shape)
		if s < 0 {
			continue
		}
		candidates = append(candidates, scored{name: name, pos: i, s: s})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].s != candidates[j].s {
			return candidates[i].s > candidates[j].s
		}
		return candidates[i].pos < candidates[j].pos
	})
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// race dispatches premises/goal to every engine capable of the detected
// problem shape concurrently; the first definitive (proved/failed) result
// wins and cancels the rest. If every engine errors or times out, the
// aggregate error is returned (spec.md §4.I "race mode").
func (m *Manager) race(ctx context.Context, premises, goal []clausify.Clause, shape problemShape, opts engine.ProveOptions) (*engine.ProveResult, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result *engine.ProveResult
		err    error
	}
	resultCh := make(chan outcome, len(PreferenceOrder))

	eg, egCtx := errgroup.WithContext(raceCtx)
	dispatched := 0
	for _, name := range PreferenceOrder {
		inst, ok := m.engineFor(name)
		if !ok {
			continue
		}
		if score(name, inst.Capabilities(), shape) < 0 {
			continue // not capable of this problem shape
		}
		inst := inst
		dispatched++
		eg.Go(func() error {
			r, err := inst.Prove(egCtx, premises, goal, opts)
			resultCh <- outcome{result: r, err: err}
			return nil
		})
	}
	if dispatched == 0 {
		return nil, errs.New(errs.CodeEngineError, "no engines available to race")
	}

	go func() {
		eg.Wait()
		close(resultCh)
	}()

	var aggregate error
	received := 0
	for o := range resultCh {
		received++
		if o.err != nil {
			aggregate = multierror.Append(aggregate, o.err)
			continue
		}
		if o.result.Verdict == engine.Proved || o.result.Verdict == engine.Failed {
			cancel()
			return o.result, nil
		}
		if received == dispatched {
			break
		}
	}
	if aggregate == nil {
		aggregate = errs.New(errs.CodeEngineError, "every engine returned a non-definitive result")
	}
	return nil, aggregate
}

// CheckSat clausifies clauses with no goal, then dispatches checkSat to the
// hinted engine (or sat, the only native implementation, by default).
func (m *Manager) CheckSat(ctx context.Context, clauses []clausify.Input, engineHint string) (*engine.SatResult, error) {
	res, err := clausify.ClausifyAll(clauses, m.opts)
	if err != nil {
		return nil, err
	}
	name := engineHint
	if name == "" {
		name = EngineSAT
	}
	eng, ok := m.engineFor(name)
	if !ok {
		return nil, errs.New(errs.CodeEngineError, "unknown engine %q", name)
	}
	return eng.CheckSat(ctx, res.Clauses)
}

// Options returns the clausify options this Manager was constructed with,
// for callers (like session rebuild) that need to clausify outside of
// Prove/CheckSat.
func (m *Manager) Options() clausify.Options { return m.opts }

// SelectEngineForPremises scores every known engine against a premise set
// alone, with no goal yet to negate -- used by session rebuild (spec.md
// §4.I), which re-scores the engine on every assert/retract.
func (m *Manager) SelectEngineForPremises(premises []clausify.Input) string {
	res, err := clausify.ClausifyAll(premises, m.opts)
	if err != nil {
		return EngineHorn
	}
	var shape problemShape
	shape.hasArithmetic = hasArithmetic(res.Clauses)
	shape.hasEquality = hasEquality(res.Clauses)
	_, hornErr := horn.Translate(res.Clauses)
	shape.isHorn = hornErr == nil
	return m.selectEngine(shape)
}

// CreateSession creates an engine-backed session for the named engine.
func (m *Manager) CreateSession(ctx context.Context, name string) (engine.Session, error) {
	m.mu.Lock()
	f, ok := m.factories[name]
	m.mu.Unlock()
	if !ok {
		return nil, errs.New(errs.CodeEngineError, "unknown engine %q", name)
	}
	// A session gets its own engine instance -- shared instances are only
	// for one-shot Prove/CheckSat calls (spec.md §4.I "each engine instance
	// is owned by exactly one session or one call").
	inst := f()
	sess, err := inst.CreateSession(ctx)
	if err != nil {
		inst.Close()
		return nil, err
	}
	return &ownedSession{Session: sess, owner: inst}, nil
}

// ownedSession closes its private engine instance alongside the session
// itself, so a session's native resources are fully released on Close.
type ownedSession struct {
	engine.Session
	owner engine.Engine
}

func (o *ownedSession) Close() error {
	sessErr := o.Session.Close()
	ownerErr := o.owner.Close()
	if sessErr != nil {
		return sessErr
	}
	return ownerErr
}

// WaitDeadline is a convenience for callers constructing a context with a
// deadline from a user-facing timeout option.
func WaitDeadline(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
