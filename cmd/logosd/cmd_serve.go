package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logos-reasoner/logos/internal/api"
	"github.com/logos-reasoner/logos/internal/errs"
	"github.com/logos-reasoner/logos/internal/logging"
)

// serveCmd runs the stateless line-delimited JSON loop of spec.md §6's
// tool surface: one request object per line of stdin, one response
// object per line of stdout. This is the same shape as the teacher's
// internal/mcp/transport_stdio.go scanner/encoder pair, simplified to a
// single request/response cycle per line since the wire transport itself
// is out of scope (spec.md §1).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool surface over line-delimited JSON on stdio",
	RunE:  runServe,
}

// serveRequest is one line of stdin: a tool name plus its JSON params.
type serveRequest struct {
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

// serveResponse is one line of stdout.
type serveResponse struct {
	Tool   string      `json:"tool"`
	Result any         `json:"result,omitempty"`
	Error  *serveError `json:"error,omitempty"`
}

type serveError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.For(logging.CategoryServer)
	log.Info("serve: listening on stdio")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req serveRequest
		if err := json.Unmarshal(line, &req); err != nil {
			_ = enc.Encode(serveResponse{Error: &serveError{Code: string(errs.CodeParseError), Message: err.Error()}})
			continue
		}
		_ = enc.Encode(dispatch(cmd.Context(), req))
	}
	return scanner.Err()
}

// dispatch runs one tool call by name, matching spec.md §6's tool surface.
func dispatch(parent context.Context, req serveRequest) serveResponse {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	switch req.Tool {
	case "prove":
		var p api.ProveRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		return okResponse(req.Tool, api.Prove(ctx, engMgr, p))

	case "check-well-formed":
		var p api.CheckWellFormedRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		return okResponse(req.Tool, api.CheckWellFormed(p))

	case "find-model":
		var p api.FindModelRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		return okResponse(req.Tool, api.FindModel(ctx, p))

	case "find-counterexample":
		var p api.FindModelRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		return okResponse(req.Tool, api.FindCounterexample(ctx, p))

	case "create-session":
		var p api.CreateSessionRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		resp, err := api.CreateSession(sessMgr, p)
		if err != nil {
			return errResponse(req.Tool, errs.CodeEngineError, err)
		}
		return okResponse(req.Tool, resp)

	case "assert-premise":
		var p api.AssertPremiseRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		if err := api.AssertPremise(ctx, sessMgr, p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		return okResponse(req.Tool, map[string]bool{"success": true})

	case "retract-premise":
		var p api.RetractPremiseRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		resp, err := api.RetractPremise(ctx, sessMgr, p)
		if err != nil {
			return errResponse(req.Tool, errs.CodeEngineError, err)
		}
		return okResponse(req.Tool, resp)

	case "list-premises":
		var p api.ListPremisesRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		resp, err := api.ListPremises(sessMgr, p)
		if err != nil {
			return errResponse(req.Tool, errs.CodeSessionNotFound, err)
		}
		return okResponse(req.Tool, resp)

	case "query-session":
		var p api.QuerySessionRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		resp, err := api.QuerySession(ctx, sessMgr, p)
		if err != nil {
			return errResponse(req.Tool, errs.CodeSessionNotFound, err)
		}
		return okResponse(req.Tool, resp)

	case "clear-session":
		var p api.ClearSessionRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		if err := api.ClearSession(sessMgr, p); err != nil {
			return errResponse(req.Tool, errs.CodeSessionNotFound, err)
		}
		return okResponse(req.Tool, map[string]bool{"success": true})

	case "delete-session":
		var p api.DeleteSessionRequest
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return errResponse(req.Tool, errs.CodeParseError, err)
		}
		if err := api.DeleteSession(sessMgr, p); err != nil {
			return errResponse(req.Tool, errs.CodeSessionNotFound, err)
		}
		return okResponse(req.Tool, map[string]bool{"success": true})

	default:
		return serveResponse{Tool: req.Tool, Error: &serveError{Code: string(errs.CodeEngineError), Message: "unknown tool " + req.Tool}}
	}
}

func okResponse(tool string, result any) serveResponse {
	return serveResponse{Tool: tool, Result: result}
}

func errResponse(tool string, code errs.Code, err error) serveResponse {
	logger.For(logging.CategoryServer).Warn("tool call failed", zap.String("tool", tool), zap.Error(err))
	if e, ok := err.(*errs.Error); ok {
		return serveResponse{Tool: tool, Error: &serveError{Code: string(e.Code), Message: e.Message}}
	}
	return serveResponse{Tool: tool, Error: &serveError{Code: string(code), Message: err.Error()}}
}
