package roles

import (
	"context"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

// Critic reviews the lead proposal for feasibility, gaps and novelty.
type Critic struct {
	base
}

var _ contractx.Agent = (*Critic)(nil)

func NewCritic(completer contractx.Completer, prompt promptx.RolePrompt) (*Critic, error) {
	b, err := newBase(contractx.RoleCritic, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &Critic{base: b}, nil
}

func (a *Critic) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	text, err := a.processContext(ctx, pctx)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	lead, _ := pctx.Response(contractx.RoleLeadSolver)
	return a.respond(contractx.CritiquePayload{
		Critique: text,
		Aspects:  aspects(scoring.CritiqueAspects(pctx.Problem().Text(), lead.Text(), text)),
	}), nil
}

func (a *Critic) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

func (a *Critic) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(contractx.CritiquePayload{
		Critique: text,
		Aspects:  aspects(scoring.CritiqueAspects(prior.Text(), text, text)),
	}), nil
}

func aspects(s scoring.Aspects) contractx.CritiqueAspects {
	return contractx.CritiqueAspects{
		Feasibility:  s.Feasibility,
		Completeness: s.Completeness,
		Innovation:   s.Innovation,
	}
}
