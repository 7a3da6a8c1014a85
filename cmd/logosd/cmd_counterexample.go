package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/api"
)

var counterexampleGoal string

// counterexampleCmd implements spec.md §6's find-counterexample tool:
// the same search as find-model over premises ∪ {¬goal}.
var counterexampleCmd = &cobra.Command{
	Use:   "counterexample [premise...]",
	Short: "Find a model of the premises where the goal is false",
	Long: `Counterexample searches for a finite model of premises ∧ ¬goal,
demonstrating that goal does not follow from premises.`,
	RunE: runCounterexample,
}

func init() {
	counterexampleCmd.Flags().StringVar(&counterexampleGoal, "goal", "", "the goal to refute (required)")
	counterexampleCmd.Flags().IntVar(&modelDomainSize, "domain-size", 0, "search only this domain size (0 searches increasing sizes)")
	counterexampleCmd.Flags().IntVar(&modelMaxDomainSize, "max-domain-size", 0, "largest domain size to try (0 means the default of 10)")
	counterexampleCmd.Flags().BoolVar(&modelUseSAT, "use-sat", false, "route predicate-extent search through the SAT engine at every domain size")
	counterexampleCmd.Flags().BoolVar(&modelEnableSymmetry, "symmetry", true, "enable lex-leader constant symmetry breaking")
	counterexampleCmd.Flags().IntVar(&modelCount, "count", 1, "number of distinct (non-isomorphic) models to find")
	_ = counterexampleCmd.MarkFlagRequired("goal")
}

func runCounterexample(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	req := modelRequest(args)
	req.Goal = counterexampleGoal
	resp := api.FindCounterexample(ctx, req)
	return emitAndExit(resp, findModelExitCode(resp))
}
