package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/api"
)

var (
	proveGoal           string
	proveInferenceLimit int
	proveEngine         string
	proveRace           bool
	proveTrace          bool
)

// proveCmd implements spec.md §6's prove tool.
var proveCmd = &cobra.Command{
	Use:   "prove [premise...]",
	Short: "Prove a goal from a set of premises",
	Long: `Prove clausifies ⋀premises ∧ ¬goal under one Skolem environment and
dispatches to the engine manager (auto-select, a named engine via --engine,
or every capable engine at once via --race).

Example:
  logosd prove --goal 'mortal(socrates).' 'human(socrates).' 'all x (human(x) -> mortal(x)).'`,
	RunE: runProve,
}

func init() {
	proveCmd.Flags().StringVar(&proveGoal, "goal", "", "the goal formula to prove (required)")
	proveCmd.Flags().IntVar(&proveInferenceLimit, "max-inferences", 0, "inference budget (0 means engine default)")
	proveCmd.Flags().StringVar(&proveEngine, "engine", "", "force a specific engine (horn, sat); empty auto-selects")
	proveCmd.Flags().BoolVar(&proveRace, "race", false, "dispatch to every capable engine concurrently")
	proveCmd.Flags().BoolVar(&proveTrace, "trace", false, "include a human-readable proof trace")
	_ = proveCmd.MarkFlagRequired("goal")
}

func runProve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	req := api.ProveRequest{
		Premises:       args,
		Goal:           proveGoal,
		InferenceLimit: proveInferenceLimit,
		Engine:         proveEngine,
		IncludeTrace:   proveTrace,
	}
	if proveRace {
		req.Strategy = "race"
	}

	resp := api.Prove(ctx, engMgr, req)
	return emitAndExit(resp, proveExitCode(resp))
}

// proveExitCode implements spec.md §6's exit-code contract for prove: 0 on
// proved, 1 on failed/timeout (a definitive non-proof), 2 on error.
func proveExitCode(resp api.ProveResponse) int {
	switch resp.Result {
	case "proved":
		return 0
	case "failed", "timeout":
		return 1
	default:
		return 2
	}
}

// emitAndExit writes v as indented JSON to stdout and exits the process
// with code unless it is 0, in which case control returns normally so
// cobra's own post-run hooks still fire.
func emitAndExit(v any, code int) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if code != 0 {
		rootCmd.PersistentPostRun(rootCmd, nil)
		os.Exit(code)
	}
	return nil
}
