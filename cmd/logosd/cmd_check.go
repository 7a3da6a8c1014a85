package main

import (
	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/api"
)

// checkCmd implements spec.md §6's check-well-formed tool.
var checkCmd = &cobra.Command{
	Use:   "check [formula...]",
	Short: "Check that formulas are syntactically well-formed",
	Long: `Check parses each formula and reports per-formula errors and
suggestions without clausifying or proving anything.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	resp := api.CheckWellFormed(api.CheckWellFormedRequest{Formulas: args})
	code := 0
	if !resp.Valid {
		code = 1
	}
	return emitAndExit(resp, code)
}
