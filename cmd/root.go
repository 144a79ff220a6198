// Package cmd holds the consensus-solver command line.
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	configx "github.com/tanpawarit/consensus-solver/pkg/config"
)

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "consensus-solver",
		Short: "Multi-agent consensus problem solver",
		Long: `consensus-solver runs a problem through six role agents, each backed by a
different LLM provider, and merges their work into one scored consensus.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configx.SetEnvFile(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file (default ./.env when present)")

	root.AddCommand(newServeCmd(), newSolveCmd(), newAgentsCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
