package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tanpawarit/consensus-solver/agent/api"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

const (
	demoDescription = "How can we optimize a machine learning model for real-time prediction?"
	demoDomain      = "machine_learning"
	demoConstraints = `{"max_latency":"100ms"}`
)

type solveFlags struct {
	description string
	domain      string
	constraints string
}

func (f solveFlags) problem() (contractx.Problem, error) {
	var constraints map[string]any
	if f.constraints != "" {
		if err := json.Unmarshal([]byte(f.constraints), &constraints); err != nil {
			return contractx.Problem{}, fmt.Errorf("%w: constraints must be a JSON object: %v", contractx.ErrValidation, err)
		}
	}
	return contractx.NewProblem(f.description, f.domain, constraints)
}

func newSolveCmd() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one problem and print the solution bundle as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			problem, err := flags.problem()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			res, err := a.solver.Solve(cmd.Context(), problem)
			if err != nil {
				var stageErr *contractx.StageError
				if errors.As(err, &stageErr) {
					_ = writeJSON(cmd.OutOrStdout(), api.NewStageFailure(stageErr))
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), api.NewSolutionBundle(res))
		},
	}
	cmd.Flags().StringVarP(&flags.description, "description", "d", demoDescription, "problem description")
	cmd.Flags().StringVar(&flags.domain, "domain", demoDomain, "problem domain")
	cmd.Flags().StringVar(&flags.constraints, "constraints", demoConstraints, "constraints as a JSON object")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
