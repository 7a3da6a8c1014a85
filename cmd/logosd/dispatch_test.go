package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/logging"
	"github.com/logos-reasoner/logos/internal/session"
)

func setupDispatchTest(t *testing.T) {
	t.Helper()
	logger = logging.NewNop()
	engMgr = manager.New(clausify.DefaultOptions())
	sessMgr = session.NewManager(engMgr)
	timeout = 5 * time.Second
	t.Cleanup(func() {
		sessMgr.Close()
		_ = engMgr.Close()
	})
}

func rawParams(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestDispatchProveRoundTrips(t *testing.T) {
	setupDispatchTest(t)
	resp := dispatch(context.Background(), serveRequest{
		Tool: "prove",
		Params: rawParams(t, map[string]any{
			"premises": []string{"human(socrates).", "all x (human(x) -> mortal(x))."},
			"goal":     "mortal(socrates).",
		}),
	})
	require.Nil(t, resp.Error)
	assert.Equal(t, "prove", resp.Tool)
}

func TestDispatchUnknownToolReturnsEngineError(t *testing.T) {
	setupDispatchTest(t)
	resp := dispatch(context.Background(), serveRequest{Tool: "not-a-tool", Params: json.RawMessage(`{}`)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errs.CodeEngineError), resp.Error.Code)
}

func TestDispatchMalformedParamsReturnsParseError(t *testing.T) {
	setupDispatchTest(t)
	resp := dispatch(context.Background(), serveRequest{Tool: "prove", Params: json.RawMessage(`not json`)})
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errs.CodeParseError), resp.Error.Code)
}

func TestDispatchSessionLifecycleAcrossCalls(t *testing.T) {
	setupDispatchTest(t)

	created := dispatch(context.Background(), serveRequest{Tool: "create-session", Params: rawParams(t, map[string]any{})})
	require.Nil(t, created.Error)

	// Re-marshal through JSON since dispatch returns a concrete api.SessionResponse.
	raw, err := json.Marshal(created.Result)
	require.NoError(t, err)
	var parsed struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.NotEmpty(t, parsed.SessionID)

	assertResp := dispatch(context.Background(), serveRequest{
		Tool: "assert-premise",
		Params: rawParams(t, map[string]any{
			"sessionId": parsed.SessionID,
			"formula":   "p(a).",
		}),
	})
	require.Nil(t, assertResp.Error)

	listResp := dispatch(context.Background(), serveRequest{
		Tool:   "list-premises",
		Params: rawParams(t, map[string]any{"sessionId": parsed.SessionID}),
	})
	require.Nil(t, listResp.Error)

	deleteResp := dispatch(context.Background(), serveRequest{
		Tool:   "delete-session",
		Params: rawParams(t, map[string]any{"sessionId": parsed.SessionID}),
	})
	require.Nil(t, deleteResp.Error)
}

func TestDispatchSessionToolsRejectUnknownSessionID(t *testing.T) {
	setupDispatchTest(t)
	resp := dispatch(context.Background(), serveRequest{
		Tool:   "list-premises",
		Params: rawParams(t, map[string]any{"sessionId": "does-not-exist"}),
	})
	require.NotNil(t, resp.Error)
}
