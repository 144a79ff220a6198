package roles

import (
	"context"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

// LeadSolver drafts the initial proposal from the bare problem.
type LeadSolver struct {
	base
}

var _ contractx.Agent = (*LeadSolver)(nil)

func NewLeadSolver(completer contractx.Completer, prompt promptx.RolePrompt) (*LeadSolver, error) {
	b, err := newBase(contractx.RoleLeadSolver, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &LeadSolver{base: b}, nil
}

func (a *LeadSolver) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	text, err := a.processContext(ctx, pctx)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(contractx.ProposalPayload{
		Proposal:   text,
		Confidence: scoring.Confidence(pctx.Problem().Text(), text),
	}), nil
}

func (a *LeadSolver) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

// Refine scores the revision against the proposal it replaces.
func (a *LeadSolver) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(contractx.ProposalPayload{
		Proposal:   text,
		Confidence: scoring.Confidence(prior.Text(), text),
	}), nil
}
