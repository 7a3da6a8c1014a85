package manager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

func TestManagerProveAutoSelectsHorn(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()

	premises := []clausify.Input{
		clausify.FromText("human(socrates)."),
		clausify.FromText("all x (human(x) -> mortal(x))."),
	}
	goal := clausify.FromText("mortal(socrates).")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := m.Prove(ctx, ProveRequest{
		Premises: premises,
		Goal:     goal,
		Options:  engine.ProveOptions{MaxInferences: 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, engine.Proved, result.Verdict)
	assert.Equal(t, "horn", result.EngineUsed)
}

func TestManagerProveRaceMode(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()

	premises := []clausify.Input{
		clausify.FromText("human(socrates)."),
		clausify.FromText("all x (human(x) -> mortal(x))."),
	}
	goal := clausify.FromText("mortal(socrates).")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result, err := m.Prove(ctx, ProveRequest{
		Premises: premises,
		Goal:     goal,
		Options:  engine.ProveOptions{MaxInferences: 1000},
		Race:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, engine.Proved, result.Verdict)
}

func TestManagerGetEngines(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()

	infos := m.GetEngines()
	names := map[string]bool{}
	for _, info := range infos {
		names[info.Name] = true
	}
	assert.True(t, names["horn"])
	assert.True(t, names["sat"])
}

func TestManagerCheckSat(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()

	clauses := []clausify.Input{clausify.FromText("p(rome).")}
	result, err := m.CheckSat(context.Background(), clauses, "")
	require.NoError(t, err)
	assert.True(t, result.Sat)
}

func TestScoreSelectsHornOverSATForPlainHornProblems(t *testing.T) {
	shape := problemShape{isHorn: true}
	hornScore := score(EngineHorn, engine.Capabilities{SupportsHorn: true}, shape)
	satScore := score(EngineSAT, engine.Capabilities{SupportsHorn: true, SupportsFullFOL: true}, shape)
	assert.Greater(t, hornScore, satScore)
}

func TestScoreRejectsEnginesWithoutArithmetic(t *testing.T) {
	shape := problemShape{hasArithmetic: true}
	s := score(EngineHorn, engine.Capabilities{SupportsHorn: true}, shape)
	assert.Less(t, s, 0)
}

func TestScoreRejectsEnginesWithoutEquality(t *testing.T) {
	shape := problemShape{hasEquality: true}
	s := score(EngineHorn, engine.Capabilities{SupportsHorn: true, NativeEquality: false}, shape)
	assert.Less(t, s, 0)
}

// failingEngine always errors, used to exercise the manager's one-level
// auto-mode fallback (spec.md §7 "Engine errors in auto mode cause the
// manager to fall back to the next-highest-scoring engine once").
type failingEngine struct{ caps engine.Capabilities }

func (f *failingEngine) Name() string                    { return f.caps.Name }
func (f *failingEngine) Capabilities() engine.Capabilities { return f.caps }
func (f *failingEngine) Close() error                      { return nil }
func (f *failingEngine) Assert(ctx context.Context, c []clausify.Clause) error { return nil }
func (f *failingEngine) Retract(ctx context.Context, c []clausify.Clause) (bool, error) {
	return false, nil
}
func (f *failingEngine) CreateSession(ctx context.Context) (engine.Session, error) { return nil, nil }
func (f *failingEngine) CheckSat(ctx context.Context, c []clausify.Clause) (*engine.SatResult, error) {
	return nil, nil
}
func (f *failingEngine) Prove(ctx context.Context, premises, goal []clausify.Clause, opts engine.ProveOptions) (*engine.ProveResult, error) {
	return nil, assert.AnError
}

func TestManagerProveFallsBackOnceWhenTopEngineErrors(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()
	m.factories[EngineHorn] = func() engine.Engine {
		return &failingEngine{caps: engine.Capabilities{Name: EngineHorn, SupportsHorn: true}}
	}

	premises := []clausify.Input{
		clausify.FromText("human(socrates)."),
		clausify.FromText("all x (human(x) -> mortal(x))."),
	}
	goal := clausify.FromText("mortal(socrates).")

	result, err := m.Prove(context.Background(), ProveRequest{
		Premises: premises,
		Goal:     goal,
		Options:  engine.ProveOptions{MaxInferences: 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, "sat", result.EngineUsed)
}

func TestManagerProveSurfacesErrorWhenEveryRankedEngineFails(t *testing.T) {
	m := New(clausify.DefaultOptions())
	defer m.Close()
	m.factories[EngineHorn] = func() engine.Engine {
		return &failingEngine{caps: engine.Capabilities{Name: EngineHorn, SupportsHorn: true}}
	}
	m.factories[EngineSAT] = func() engine.Engine {
		return &failingEngine{caps: engine.Capabilities{Name: EngineSAT, SupportsHorn: true, SupportsFullFOL: true}}
	}

	premises := []clausify.Input{clausify.FromText("human(socrates).")}
	goal := clausify.FromText("human(socrates).")

	_, err := m.Prove(context.Background(), ProveRequest{
		Premises: premises,
		Goal:     goal,
		Options:  engine.ProveOptions{MaxInferences: 1000},
	})
	assert.Error(t, err)
}
