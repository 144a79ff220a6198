package roles

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

const SynthesisMethod = "weighted_integration"

// ConsensusBuilder synthesizes the five prior responses into the final
// recommendation and scores how well it reflects them.
type ConsensusBuilder struct {
	base
}

var _ contractx.Agent = (*ConsensusBuilder)(nil)

func NewConsensusBuilder(completer contractx.Completer, prompt promptx.RolePrompt) (*ConsensusBuilder, error) {
	b, err := newBase(contractx.RoleConsensusBuilder, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &ConsensusBuilder{base: b}, nil
}

func (a *ConsensusBuilder) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	if pctx == nil {
		return contractx.AgentResponse{}, fmt.Errorf("%w: problem context is required", contractx.ErrValidation)
	}
	prior := pctx.Responses()
	if err := checkPrior(prior); err != nil {
		return contractx.AgentResponse{}, err
	}

	input, err := marshalInput(map[string]any{
		"problem":         pctx.Problem(),
		"agent_responses": prior,
	})
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	text, err := a.complete(ctx, a.prompt.System, input)
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	m := scoring.AgreementMetrics(pctx.Problem().Text(), texts(prior), text)
	return a.respond(contractx.ConsensusPayload{
		Consensus:        text,
		AgreementMetrics: agreement(m),
		SynthesisMethod:  SynthesisMethod,
	}), nil
}

func (a *ConsensusBuilder) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

// Refine keeps the harmony score of prior, which only depends on the
// responses that were synthesized.
func (a *ConsensusBuilder) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	prev, _ := prior.Payload.(contractx.ConsensusPayload)

	m := agreement(scoring.AgreementMetrics(prev.Consensus, []string{prev.Consensus}, text))
	m.HarmonyScore = prev.AgreementMetrics.HarmonyScore
	return a.respond(contractx.ConsensusPayload{
		Consensus:        text,
		AgreementMetrics: m,
		SynthesisMethod:  SynthesisMethod,
	}), nil
}

// checkPrior requires exactly the five earlier stages, in order, each with text.
func checkPrior(prior []contractx.AgentResponse) error {
	want := contractx.Roles()[:contractx.RoleConsensusBuilder.Rank()-1]
	if len(prior) != len(want) {
		return fmt.Errorf("%w: expected %d prior responses, got %d", contractx.ErrAggregation, len(want), len(prior))
	}
	for i, r := range prior {
		if r.Role != want[i] {
			return fmt.Errorf("%w: response %d is %s, expected %s", contractx.ErrAggregation, i+1, r.Role, want[i])
		}
		if strings.TrimSpace(r.Text()) == "" {
			return fmt.Errorf("%w: %s response has no text", contractx.ErrAggregation, r.Role)
		}
	}
	return nil
}

func agreement(m scoring.Agreement) contractx.AgreementMetrics {
	return contractx.AgreementMetrics{
		HarmonyScore:      m.HarmonyScore,
		Coverage:          m.Coverage,
		ResolutionQuality: m.ResolutionQuality,
	}
}
