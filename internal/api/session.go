package api

import (
	"context"
	"time"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/session"
)

// CreateSessionRequest is the wire shape of spec.md §6's create-session
// tool.
type CreateSessionRequest struct {
	TTLMinutes int  `json:"ttlMinutes,omitempty"`
	Ontology   bool `json:"ontology,omitempty"`
}

// SessionResponse wraps a session ID, returned by create-session and
// carried by every other session tool's request.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateSession allocates a new session (spec.md §6, §7 "Session IDs are
// opaque UUIDs. TTL default 30 min, max 24 h.").
func CreateSession(mgr *session.Manager, req CreateSessionRequest) (SessionResponse, error) {
	opts := session.CreateOptions{EnableOntology: req.Ontology}
	if req.TTLMinutes > 0 {
		opts.TTL = time.Duration(req.TTLMinutes) * time.Minute
	}
	s, err := mgr.Create(opts)
	if err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{SessionID: s.ID}, nil
}

// AssertPremiseRequest is the wire shape of assert-premise.
type AssertPremiseRequest struct {
	SessionID string `json:"sessionId"`
	Formula   string `json:"formula"`
}

// AssertPremise adds one premise to a session.
func AssertPremise(ctx context.Context, mgr *session.Manager, req AssertPremiseRequest) error {
	s, err := mgr.Get(req.SessionID)
	if err != nil {
		return err
	}
	return s.AssertPremise(ctx, req.Formula)
}

// RetractPremiseRequest is the wire shape of retract-premise.
type RetractPremiseRequest struct {
	SessionID string `json:"sessionId"`
	Formula   string `json:"formula"`
}

// RetractPremiseResponse reports whether a matching premise was found.
type RetractPremiseResponse struct {
	Removed bool `json:"removed"`
}

// RetractPremise removes the first byte-identical premise from a session.
func RetractPremise(ctx context.Context, mgr *session.Manager, req RetractPremiseRequest) (RetractPremiseResponse, error) {
	s, err := mgr.Get(req.SessionID)
	if err != nil {
		return RetractPremiseResponse{}, err
	}
	removed, err := s.RetractPremise(ctx, req.Formula)
	return RetractPremiseResponse{Removed: removed}, err
}

// ListPremisesRequest is the wire shape of list-premises.
type ListPremisesRequest struct {
	SessionID string `json:"sessionId"`
}

// ListPremisesResponse carries a session's current premise list.
type ListPremisesResponse struct {
	Premises []string `json:"premises"`
}

// ListPremises returns a session's current premise list.
func ListPremises(mgr *session.Manager, req ListPremisesRequest) (ListPremisesResponse, error) {
	s, err := mgr.Get(req.SessionID)
	if err != nil {
		return ListPremisesResponse{}, err
	}
	return ListPremisesResponse{Premises: s.ListPremises()}, nil
}

// QuerySessionRequest is the wire shape of query-session: prove a goal
// against a session's current premises without mutating it.
type QuerySessionRequest struct {
	SessionID      string `json:"sessionId"`
	Goal           string `json:"goal"`
	InferenceLimit int    `json:"inferenceLimit,omitempty"`
	TimeoutMs      int    `json:"timeoutMs,omitempty"`
}

// QuerySession proves a goal against a session's live premises.
func QuerySession(ctx context.Context, mgr *session.Manager, req QuerySessionRequest) (ProveResponse, error) {
	s, err := mgr.Get(req.SessionID)
	if err != nil {
		return ProveResponse{}, err
	}
	opts := engine.ProveOptions{MaxInferences: req.InferenceLimit}
	if req.TimeoutMs > 0 {
		opts.Deadline = time.Now().Add(time.Duration(req.TimeoutMs) * time.Millisecond)
	}
	result, err := s.Prove(ctx, req.Goal, opts)
	if err != nil {
		return errorResponse(err), nil
	}
	resp := ProveResponse{
		Success:    result.Verdict == engine.Proved,
		Result:     string(result.Verdict),
		Bindings:   result.Bindings,
		Proof:      result.Trace,
		EngineUsed: result.EngineUsed,
		Statistics: &ProveStatistics{InferenceCount: result.InferenceCount, HitLimit: result.HitLimit},
	}
	return resp, nil
}

// ClearSessionRequest is the wire shape of clear-session.
type ClearSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// ClearSession removes every premise from a session, keeping it alive.
func ClearSession(mgr *session.Manager, req ClearSessionRequest) error {
	s, err := mgr.Get(req.SessionID)
	if err != nil {
		return err
	}
	return s.Clear()
}

// DeleteSessionRequest is the wire shape of delete-session.
type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// DeleteSession removes a session entirely.
func DeleteSession(mgr *session.Manager, req DeleteSessionRequest) error {
	return mgr.Delete(req.SessionID)
}
