package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/api"
)

var (
	modelDomainSize     int
	modelMaxDomainSize  int
	modelUseSAT         bool
	modelEnableSymmetry bool
	modelCount          int
)

// modelCmd implements spec.md §6's find-model tool.
var modelCmd = &cobra.Command{
	Use:   "model [premise...]",
	Short: "Find a finite model satisfying a set of premises",
	Long: `Model searches domains of increasing size (or a fixed size via
--domain-size) for a satisfying interpretation of the given premises,
per spec.md §4.J.`,
	RunE: runModel,
}

func init() {
	modelCmd.Flags().IntVar(&modelDomainSize, "domain-size", 0, "search only this domain size (0 searches increasing sizes)")
	modelCmd.Flags().IntVar(&modelMaxDomainSize, "max-domain-size", 0, "largest domain size to try (0 means the default of 10)")
	modelCmd.Flags().BoolVar(&modelUseSAT, "use-sat", false, "route predicate-extent search through the SAT engine at every domain size")
	modelCmd.Flags().BoolVar(&modelEnableSymmetry, "symmetry", true, "enable lex-leader constant symmetry breaking")
	modelCmd.Flags().IntVar(&modelCount, "count", 1, "number of distinct (non-isomorphic) models to find")
}

func runModel(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp := api.FindModel(ctx, modelRequest(args))
	return emitAndExit(resp, findModelExitCode(resp))
}

func modelRequest(premises []string) api.FindModelRequest {
	return api.FindModelRequest{
		Premises:       premises,
		DomainSize:     modelDomainSize,
		MaxDomainSize:  modelMaxDomainSize,
		UseSAT:         modelUseSAT,
		EnableSymmetry: modelEnableSymmetry,
		Count:          modelCount,
	}
}

// findModelExitCode implements spec.md §6's exit-code contract: 0 on
// found, 1 on notFound, 2 on error.
func findModelExitCode(resp api.FindModelResponse) int {
	switch resp.Result {
	case "found":
		return 0
	case "notFound":
		return 1
	default:
		return 2
	}
}
