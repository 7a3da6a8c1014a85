// Package main implements logosd, the command-line front end to the logos
// automated reasoning service. Commands mirror the tool surface of
// spec.md §6 one-to-one: prove, check, model, counterexample, session,
// serve. Command implementations are split across cmd_*.go files, one per
// capability, following the teacher's cmd/nerd one-subcommand-per-file
// layout.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/logos-reasoner/logos/internal/config"
	"github.com/logos-reasoner/logos/internal/engine/manager"
	"github.com/logos-reasoner/logos/internal/fol/clausify"
	"github.com/logos-reasoner/logos/internal/logging"
	"github.com/logos-reasoner/logos/internal/session"
)

var (
	configPath string
	verbose    bool
	timeout    time.Duration

	cfg     *config.Config
	logger  *logging.Logger
	engMgr  *manager.Manager
	sessMgr *session.Manager
)

// rootCmd is the logosd command tree's base command.
var rootCmd = &cobra.Command{
	Use:   "logosd",
	Short: "logosd - an automated first-order reasoning service",
	Long: `logosd proves first-order formulas with equality and optional
linear arithmetic, clausifies and reasons over them with pluggable Horn
(SLD) and SAT backends, and finds or refutes finite models.

Run a subcommand for one-shot use, or "serve" for the stateless
line-delimited JSON tool surface of spec.md §6.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			loaded.Logging.Debug = true
		}
		cfg = loaded

		l, err := logging.New(cfg.Logging.Debug)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l

		engMgr = manager.New(clausify.Options{
			Strategy:      clausify.StrategyStandard,
			Timeout:       cfg.ClausifyTimeoutDuration(),
			MaxClauses:    cfg.Engine.MaxClauses,
			MaxClauseSize: cfg.Engine.MaxClauseSize,
		})
		sessMgr = session.NewManager(engMgr)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if sessMgr != nil {
			sessMgr.Close()
		}
		if engMgr != nil {
			_ = engMgr.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a logosd YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "deadline for one-shot commands")

	rootCmd.AddCommand(proveCmd, checkCmd, modelCmd, counterexampleCmd, sessionCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command error to spec.md §6's exit code contract: 0
// on proved/model-found/valid, 1 on not-proved/no-model/invalid, 2 on
// internal error. Commands that reach main's error path here have already
// failed internally (parse/config/IO errors), so 2 is always correct;
// the 0/1 split is decided by each command itself through an explicit
// os.Exit (emitAndExit) before returning to Execute.
func exitCodeFor(err error) int {
	return 2
}
