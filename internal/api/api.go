// Package api implements the tool surface of spec.md §6: the JSON-shaped
// request/response pairs (prove, check-well-formed, find-model,
// find-counterexample, and the session tools) as plain Go functions over
// the engine manager and session manager, with no transport opinions of
// its own. cmd/logosd binds these to cobra subcommands and to the serve
// stdio loop; either caller gets the identical behavior.
package api

import (
	"context"
	"time"

	"github.com/logos-reasoner/logos/internal/engine"
	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/fol/parser"
	"github.com/logos-reasoner/logos/internal/modelfinder"
)

// ProveRequest is the wire shape of spec.md §6's prove tool.
type ProveRequest struct {
	Premises         []string `json:"premises"`
	Goal             string   `json:"goal"`
	InferenceLimit   int      `json:"inferenceLimit,omitempty"`
	EnableEquality   bool     `json:"enableEquality,omitempty"`
	EnableArithmetic bool     `json:"enableArithmetic,omitempty"`
	Engine           string   `json:"engine,omitempty"`
	Strategy         string   `json:"strategy,omitempty"` // "race" selects race mode; any other value is ignored (Engine carries the engine hint)
	TimeoutMs        int      `json:"timeoutMs,omitempty"`
	IncludeTrace     bool     `json:"includeTrace,omitempty"`
}

// ProveResponse is the wire shape of prove's result.
type ProveResponse struct {
	Success    bool              `json:"success"`
	Result     string            `json:"result"` // proved|failed|error|timeout
	Message    string            `json:"message,omitempty"`
	Bindings   map[string]string `json:"bindings,omitempty"`
	Proof      []string          `json:"proof,omitempty"`
	EngineUsed string            `json:"engineUsed,omitempty"`
	Statistics *ProveStatistics  `json:"statistics,omitempty"`
}

// ProveStatistics reports solver effort, mirroring engine.ProveResult.
type ProveStatistics struct {
	InferenceCount int  `json:"inferenceCount"`
	HitLimit       bool `json:"hitLimit"`
}

// Prove runs spec.md §6's prove tool against mgr.
func Prove(ctx context.Context, mgr *manager.Manager, req ProveRequest) ProveResponse {
	premises := make([]clausify.Input, len(req.Premises))
	for i, p := range req.Premises {
		premises[i] = clausify.FromText(p)
	}

	opts := engine.ProveOptions{
		MaxInferences:    req.InferenceLimit,
		EnableEquality:   req.EnableEquality,
		EnableArithmetic: req.EnableArithmetic,
		IncludeTrace:     req.IncludeTrace,
	}
	if req.TimeoutMs > 0 {
		opts.Deadline = time.Now().Add(time.Duration(req.TimeoutMs) * time.Millisecond)
	}

	result, err := mgr.Prove(ctx, manager.ProveRequest{
		Premises:   premises,
		Goal:       clausify.FromText(req.Goal),
		Options:    opts,
		EngineHint: req.Engine,
		Race:       req.Strategy == "race",
	})
	if err != nil {
		return errorResponse(err)
	}

	resp := ProveResponse{
		Success:    result.Verdict == engine.Proved,
		Result:     string(result.Verdict),
		Bindings:   result.Bindings,
		Proof:      result.Trace,
		EngineUsed: result.EngineUsed,
		Statistics: &ProveStatistics{InferenceCount: result.InferenceCount, HitLimit: result.HitLimit},
	}
	if result.Error != nil {
		resp.Message = result.Error.Error()
	}
	return resp
}

// CheckWellFormedRequest is the wire shape of spec.md §6's check-well-formed
// tool.
type CheckWellFormedRequest struct {
	Formulas []string `json:"formulas"`
}

// FormulaCheck is one formula's diagnostic in check-well-formed's response,
// matching parser.Diagnostic.
type FormulaCheck struct {
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// CheckWellFormedResponse is the wire shape of check-well-formed's result.
type CheckWellFormedResponse struct {
	Valid      bool           `json:"valid"`
	PerFormula []FormulaCheck `json:"perFormula"`
}

// CheckWellFormed parses every formula and reports parse diagnostics
// without clausifying or proving anything.
func CheckWellFormed(req CheckWellFormedRequest) CheckWellFormedResponse {
	diags := parser.Diagnose(req.Formulas)
	resp := CheckWellFormedResponse{Valid: true, PerFormula: make([]FormulaCheck, len(diags))}
	for i, d := range diags {
		if len(d.Errors) > 0 {
			resp.Valid = false
		}
		resp.PerFormula[i] = FormulaCheck{Errors: d.Errors, Warnings: d.Warnings, Suggestions: d.Suggestions}
	}
	return resp
}

// FindModelRequest is the wire shape of spec.md §6's find-model tool
// (find-counterexample reuses it with Goal set, premises ∪ {¬goal}).
type FindModelRequest struct {
	Premises       []string `json:"premises"`
	Goal           string   `json:"goal,omitempty"` // only set by find-counterexample
	DomainSize     int      `json:"domainSize,omitempty"`
	MaxDomainSize  int      `json:"maxDomainSize,omitempty"`
	UseSAT         bool     `json:"useSAT,omitempty"`
	EnableSymmetry bool     `json:"enableSymmetry,omitempty"`
	Count          int      `json:"count,omitempty"`
	TimeoutMs      int      `json:"timeoutMs,omitempty"`
}

// FindModelResponse is the wire shape of find-model/find-counterexample's
// result.
type FindModelResponse struct {
	Success        bool     `json:"success"`
	Result         string   `json:"result"` // found|notFound|error
	Message        string   `json:"message,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
	Models         []string `json:"models,omitempty"`
}

// FindModel runs spec.md §6's find-model tool.
func FindModel(ctx context.Context, req FindModelRequest) FindModelResponse {
	return findModel(ctx, req.Premises, req)
}

// FindCounterexample runs spec.md §6's find-counterexample tool: premises
// plus the negated goal, searched for a satisfying model (a model of the
// premises where the goal is false is a counterexample to the entailment).
func FindCounterexample(ctx context.Context, req FindModelRequest) FindModelResponse {
	premises := append(append([]string(nil), req.Premises...), "-("+req.Goal+")")
	return findModel(ctx, premises, req)
}

func findModel(ctx context.Context, premises []string, req FindModelRequest) FindModelResponse {
	opts := modelfinder.DefaultOptions()
	opts.DomainSize = req.DomainSize
	if req.MaxDomainSize > 0 {
		opts.MaxDomainSize = req.MaxDomainSize
	}
	opts.EnableSymmetry = req.EnableSymmetry
	if req.Count > 0 {
		opts.Count = req.Count
	}
	if req.UseSAT {
		opts.SATThreshold = 1
	}
	if req.TimeoutMs > 0 {
		opts.Deadline = time.Now().Add(time.Duration(req.TimeoutMs) * time.Millisecond)
	}

	result, err := modelfinder.Find(ctx, premises, opts)
	if err != nil {
		return errorToFindModelResponse(err)
	}
	if !result.Found {
		return FindModelResponse{Success: false, Result: "notFound"}
	}

	models := make([]string, len(result.Models))
	for i, m := range result.Models {
		models[i] = m.String()
	}
	resp := FindModelResponse{Success: true, Result: "found", Models: models}
	if len(models) > 0 {
		resp.Interpretation = models[0]
	}
	return resp
}

func errorResponse(err error) ProveResponse {
	resp := ProveResponse{Success: false, Message: err.Error()}
	if e, ok := err.(*errs.Error); ok && e.Code == errs.CodeTimeout {
		resp.Result = string(engine.Timeout)
	} else {
		resp.Result = string(engine.ErrorV)
	}
	return resp
}

func errorToFindModelResponse(err error) FindModelResponse {
	return FindModelResponse{Success: false, Result: "error", Message: err.Error()}
}
