package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/session"
)

func newTestSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	engMgr := manager.New(clausify.DefaultOptions())
	sessMgr := session.NewManager(engMgr)
	t.Cleanup(func() {
		sessMgr.Close()
		_ = engMgr.Close()
	})
	return sessMgr
}

func TestCreateSessionReturnsAnID(t *testing.T) {
	sessMgr := newTestSessionManager(t)
	resp, err := CreateSession(sessMgr, CreateSessionRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
}

func TestAssertListRetractClearRoundTrip(t *testing.T) {
	ctx := context.Background()
	sessMgr := newTestSessionManager(t)
	created, err := CreateSession(sessMgr, CreateSessionRequest{})
	require.NoError(t, err)
	id := created.SessionID

	require.NoError(t, AssertPremise(ctx, sessMgr, AssertPremiseRequest{SessionID: id, Formula: "human(socrates)."}))
	require.NoError(t, AssertPremise(ctx, sessMgr, AssertPremiseRequest{SessionID: id, Formula: "all x (human(x) -> mortal(x))."}))

	list, err := ListPremises(sessMgr, ListPremisesRequest{SessionID: id})
	require.NoError(t, err)
	assert.Len(t, list.Premises, 2)

	removed, err := RetractPremise(ctx, sessMgr, RetractPremiseRequest{SessionID: id, Formula: "human(socrates)."})
	require.NoError(t, err)
	assert.True(t, removed.Removed)

	list, err = ListPremises(sessMgr, ListPremisesRequest{SessionID: id})
	require.NoError(t, err)
	assert.Len(t, list.Premises, 1)

	require.NoError(t, ClearSession(sessMgr, ClearSessionRequest{SessionID: id}))
	list, err = ListPremises(sessMgr, ListPremisesRequest{SessionID: id})
	require.NoError(t, err)
	assert.Empty(t, list.Premises)
}

func TestQuerySessionProvesAgainstLivePremisesWithoutMutating(t *testing.T) {
	ctx := context.Background()
	sessMgr := newTestSessionManager(t)
	created, err := CreateSession(sessMgr, CreateSessionRequest{})
	require.NoError(t, err)
	id := created.SessionID

	require.NoError(t, AssertPremise(ctx, sessMgr, AssertPremiseRequest{SessionID: id, Formula: "human(socrates)."}))
	require.NoError(t, AssertPremise(ctx, sessMgr, AssertPremiseRequest{SessionID: id, Formula: "all x (human(x) -> mortal(x))."}))

	resp, err := QuerySession(ctx, sessMgr, QuerySessionRequest{SessionID: id, Goal: "mortal(socrates)."})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	list, err := ListPremises(sessMgr, ListPremisesRequest{SessionID: id})
	require.NoError(t, err)
	assert.Len(t, list.Premises, 2)
}

func TestDeleteSessionRemovesItEntirely(t *testing.T) {
	sessMgr := newTestSessionManager(t)
	created, err := CreateSession(sessMgr, CreateSessionRequest{})
	require.NoError(t, err)

	require.NoError(t, DeleteSession(sessMgr, DeleteSessionRequest{SessionID: created.SessionID}))
	_, err = ListPremises(sessMgr, ListPremisesRequest{SessionID: created.SessionID})
	assert.Error(t, err)
}

func TestOperationsOnUnknownSessionReturnError(t *testing.T) {
	ctx := context.Background()
	sessMgr := newTestSessionManager(t)
	require.Error(t, AssertPremise(ctx, sessMgr, AssertPremiseRequest{SessionID: "nope", Formula: "p(a)."}))
}
