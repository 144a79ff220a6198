package roles

import (
	"context"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

// Judgment checks facts and logic of the lead proposal.
type Judgment struct {
	base
}

var _ contractx.Agent = (*Judgment)(nil)

func NewJudgment(completer contractx.Completer, prompt promptx.RolePrompt) (*Judgment, error) {
	b, err := newBase(contractx.RoleJudgment, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &Judgment{base: b}, nil
}

func (a *Judgment) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	text, err := a.processContext(ctx, pctx)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(verification(text)), nil
}

func (a *Judgment) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

func (a *Judgment) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(verification(text)), nil
}

func verification(text string) contractx.VerificationPayload {
	m := scoring.VerificationMetrics(text)
	return contractx.VerificationPayload{
		Verification: text,
		Metrics: contractx.VerificationMetrics{
			FactualAccuracy:    m.FactualAccuracy,
			LogicalConsistency: m.LogicalConsistency,
			EvidenceStrength:   m.EvidenceStrength,
		},
	}
}
