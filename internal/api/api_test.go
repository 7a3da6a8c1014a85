package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
)

func newTestManager(t *testing.T) *manager.Manager {
	t.Helper()
	mgr := manager.New(clausify.DefaultOptions())
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestProveSucceedsOnValidHornEntailment(t *testing.T) {
	mgr := newTestManager(t)
	resp := Prove(context.Background(), mgr, ProveRequest{
		Premises: []string{"human(socrates).", "all x (human(x) -> mortal(x))."},
		Goal:     "mortal(socrates).",
	})
	require.True(t, resp.Success)
	assert.Equal(t, "proved", resp.Result)
	require.NotNil(t, resp.Statistics)
}

func TestProveReportsFailedWhenGoalDoesNotFollow(t *testing.T) {
	mgr := newTestManager(t)
	resp := Prove(context.Background(), mgr, ProveRequest{
		Premises: []string{"human(socrates)."},
		Goal:     "mortal(socrates).",
	})
	assert.False(t, resp.Success)
	assert.NotEqual(t, "proved", resp.Result)
}

func TestCheckWellFormedFlagsParseErrorsPerFormula(t *testing.T) {
	resp := CheckWellFormed(CheckWellFormedRequest{Formulas: []string{"p(a).", "all x (p(x"}})
	require.Len(t, resp.PerFormula, 2)
	assert.False(t, resp.Valid)
	assert.Empty(t, resp.PerFormula[0].Errors)
	assert.NotEmpty(t, resp.PerFormula[1].Errors)
}

func TestCheckWellFormedValidWhenEveryFormulaParses(t *testing.T) {
	resp := CheckWellFormed(CheckWellFormedRequest{Formulas: []string{"p(a).", "q(b)."}})
	assert.True(t, resp.Valid)
}

func TestFindModelReportsFoundForSatisfiablePremises(t *testing.T) {
	resp := FindModel(context.Background(), FindModelRequest{
		Premises: []string{"p(a)."},
	})
	assert.True(t, resp.Success)
	assert.Equal(t, "found", resp.Result)
	assert.NotEmpty(t, resp.Interpretation)
}

func TestFindCounterexampleNegatesTheGoalBeforeSearching(t *testing.T) {
	resp := FindCounterexample(context.Background(), FindModelRequest{
		Premises: []string{"p(a)."},
		Goal:     "q(a)",
	})
	// p(a) doesn't entail q(a): a counterexample model must exist.
	assert.Equal(t, "found", resp.Result)
}
