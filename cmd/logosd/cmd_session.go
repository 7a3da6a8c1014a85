package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/api"
)

var (
	sessionID         string
	sessionTTLMinutes int
	sessionOntology   bool
	sessionFormula    string
	sessionGoal       string
)

// sessionCmd groups spec.md §6's session tools under one subcommand tree,
// mirroring the teacher's sessionsCmd grouping in cmd/nerd/cmd_sessions.go.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage long-lived reasoning sessions",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new session",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.CreateSession(sessMgr, api.CreateSessionRequest{
			TTLMinutes: sessionTTLMinutes,
			Ontology:   sessionOntology,
		})
		if err != nil {
			return err
		}
		return emitAndExit(resp, 0)
	},
}

var sessionAssertCmd = &cobra.Command{
	Use:   "assert",
	Short: "Assert a premise into a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		err := api.AssertPremise(ctx, sessMgr, api.AssertPremiseRequest{SessionID: sessionID, Formula: sessionFormula})
		if err != nil {
			return err
		}
		return emitAndExit(map[string]bool{"success": true}, 0)
	},
}

var sessionRetractCmd = &cobra.Command{
	Use:   "retract",
	Short: "Retract a premise from a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		resp, err := api.RetractPremise(ctx, sessMgr, api.RetractPremiseRequest{SessionID: sessionID, Formula: sessionFormula})
		if err != nil {
			return err
		}
		code := 0
		if !resp.Removed {
			code = 1
		}
		return emitAndExit(resp, code)
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a session's current premises",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := api.ListPremises(sessMgr, api.ListPremisesRequest{SessionID: sessionID})
		if err != nil {
			return err
		}
		return emitAndExit(resp, 0)
	},
}

var sessionQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Prove a goal against a session's current premises",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		resp, err := api.QuerySession(ctx, sessMgr, api.QuerySessionRequest{SessionID: sessionID, Goal: sessionGoal})
		if err != nil {
			return err
		}
		return emitAndExit(resp, proveExitCode(resp))
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every premise from a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.ClearSession(sessMgr, api.ClearSessionRequest{SessionID: sessionID}); err != nil {
			return err
		}
		return emitAndExit(map[string]bool{"success": true}, 0)
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteSession(sessMgr, api.DeleteSessionRequest{SessionID: sessionID}); err != nil {
			return err
		}
		return emitAndExit(map[string]bool{"success": true}, 0)
	},
}

func init() {
	sessionCreateCmd.Flags().IntVar(&sessionTTLMinutes, "ttl-minutes", 0, "session TTL in minutes (0 means the default of 30)")
	sessionCreateCmd.Flags().BoolVar(&sessionOntology, "ontology", false, "attach a synonym-expanding ontology to this session")

	for _, c := range []*cobra.Command{sessionAssertCmd, sessionRetractCmd, sessionListCmd, sessionQueryCmd, sessionClearCmd, sessionDeleteCmd} {
		c.Flags().StringVar(&sessionID, "session", "", "session ID (required)")
		_ = c.MarkFlagRequired("session")
	}
	sessionAssertCmd.Flags().StringVar(&sessionFormula, "formula", "", "the premise formula to assert (required)")
	_ = sessionAssertCmd.MarkFlagRequired("formula")
	sessionRetractCmd.Flags().StringVar(&sessionFormula, "formula", "", "the premise formula to retract, byte-identical to how it was asserted (required)")
	_ = sessionRetractCmd.MarkFlagRequired("formula")
	sessionQueryCmd.Flags().StringVar(&sessionGoal, "goal", "", "the goal to prove against the session's premises (required)")
	_ = sessionQueryCmd.MarkFlagRequired("goal")

	sessionCmd.AddCommand(sessionCreateCmd, sessionAssertCmd, sessionRetractCmd, sessionListCmd, sessionQueryCmd, sessionClearCmd, sessionDeleteCmd)
}
