package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tanpawarit/consensus-solver/agent/agents/roles"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	llmx "github.com/tanpawarit/consensus-solver/agent/llm"
)

// newAgentsCmd lists the pipeline without touching any provider.
func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the pipeline stages and the provider behind each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STAGE\tKEY\tAGENT\tPROVIDER")
			for _, role := range contractx.Roles() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", role.Rank(), role.Key(), roles.Label(role), llmx.ProviderFor(role))
			}
			return tw.Flush()
		},
	}
}
