package roles

import (
	"context"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

// Strategist lays out the implications of the lead proposal over time.
type Strategist struct {
	base
}

var _ contractx.Agent = (*Strategist)(nil)

func NewStrategist(completer contractx.Completer, prompt promptx.RolePrompt) (*Strategist, error) {
	b, err := newBase(contractx.RoleStrategist, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &Strategist{base: b}, nil
}

func (a *Strategist) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	text, err := a.processContext(ctx, pctx)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(strategy(text)), nil
}

func (a *Strategist) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

func (a *Strategist) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	return a.respond(strategy(text)), nil
}

func strategy(text string) contractx.StrategyPayload {
	s := scoring.StrategyBreakdown(text)
	return contractx.StrategyPayload{
		StrategicAnalysis: text,
		Implications: contractx.Implications{
			ShortTerm:  s.ShortTerm,
			MediumTerm: s.MediumTerm,
			LongTerm:   s.LongTerm,
		},
		Risks:         s.Risks,
		Opportunities: s.Opportunities,
	}
}
