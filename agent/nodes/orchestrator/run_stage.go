package orchestratornode

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	llmx "github.com/tanpawarit/consensus-solver/agent/llm"
)

// RunStage runs agent over the full context and appends its response.
func RunStage(ctx context.Context, in *RunState, agent contractx.Agent) (*RunState, error) {
	if in == nil || in.Context == nil {
		return nil, ErrNilState
	}
	if agent == nil {
		return nil, fmt.Errorf("%w: no agent for stage %d", contractx.ErrValidation, in.Context.Len()+1)
	}

	resp, err := invoke(ctx, agent, in.Context)
	if err == nil {
		err = in.Context.Append(resp)
	}
	if err != nil {
		return nil, in.fail(agent.Role(), err)
	}
	return in, nil
}

// invoke calls agent.Process unless the run is already over, and logs the stage.
func invoke(ctx context.Context, agent contractx.Agent, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	role := agent.Role()
	logger := zerolog.Ctx(ctx).With().Int("stage", role.Rank()).Str("role", role.Key()).Logger()

	if err := ctx.Err(); err != nil {
		return contractx.AgentResponse{}, llmx.Classify(llmx.ProviderFor(role), err)
	}

	started := time.Now()
	resp, err := agent.Process(ctx, pctx)
	elapsed := time.Since(started)
	if err != nil {
		logger.Warn().Err(err).Dur("duration", elapsed).Str("fault", string(contractx.KindOf(err))).Msg("stage failed")
		return contractx.AgentResponse{}, err
	}
	if resp.Role != role {
		return contractx.AgentResponse{}, fmt.Errorf("%w: %s agent answered as %s", contractx.ErrValidation, role, resp.Role)
	}

	logger.Info().Dur("duration", elapsed).Msg("stage completed")
	return resp, nil
}

func (s *RunState) fail(role contractx.Role, err error) error {
	if s.Fault == nil {
		s.Fault = contractx.NewStageError(role, err, s.Context.Responses())
	}
	return s.Fault
}
