package orchestratornode

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// RunAnalysisStages runs the review stages against a view holding only the
// lead proposal. Responses are appended in rank order up to the first
// failing stage, whose fault is reported; nothing after it is kept.
//
// In parallel mode siblings are not cancelled when one fails, so a fault is
// always attributed to the lowest failing rank rather than to a sibling that
// happened to be interrupted.
func RunAnalysisStages(ctx context.Context, in *RunState, agents []contractx.Agent, parallel bool) (*RunState, error) {
	if in == nil || in.Context == nil {
		return nil, ErrNilState
	}
	for i, agent := range agents {
		if agent == nil {
			return nil, fmt.Errorf("%w: analysis agent %d is missing", contractx.ErrValidation, i)
		}
	}

	view := in.Context.View(1)
	results := make([]contractx.AgentResponse, len(agents))
	errs := make([]error, len(agents))

	if parallel {
		var g errgroup.Group
		for i, agent := range agents {
			g.Go(func() error {
				results[i], errs[i] = invoke(ctx, agent, view)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, agent := range agents {
			results[i], errs[i] = invoke(ctx, agent, view)
			if errs[i] != nil {
				break
			}
		}
	}

	for i, agent := range agents {
		err := errs[i]
		if err == nil {
			err = in.Context.Append(results[i])
		}
		if err != nil {
			return nil, in.fail(agent.Role(), err)
		}
	}
	return in, nil
}
