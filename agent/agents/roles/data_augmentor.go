package roles

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
	statex "github.com/tanpawarit/consensus-solver/agent/state"
)

const maxInsights = 8

// DataAugmentor records each problem in the learning history and augments
// the proposal with what the recent window has in common.
type DataAugmentor struct {
	base
}

var _ contractx.Agent = (*DataAugmentor)(nil)

func NewDataAugmentor(completer contractx.Completer, prompt promptx.RolePrompt) (*DataAugmentor, error) {
	b, err := newBase(contractx.RoleDataAugmentor, completer, prompt)
	if err != nil {
		return nil, err
	}
	return &DataAugmentor{base: b}, nil
}

func (a *DataAugmentor) Process(ctx context.Context, pctx *contractx.ProblemContext) (contractx.AgentResponse, error) {
	if pctx == nil {
		return contractx.AgentResponse{}, fmt.Errorf("%w: problem context is required", contractx.ErrValidation)
	}

	problem := pctx.Problem()
	prior := pctx.Responses()
	priorTexts := texts(prior)

	roleKeys := make([]string, 0, len(prior))
	for _, r := range prior {
		roleKeys = append(roleKeys, r.Role.Key())
	}
	entry := statex.Entry{
		ProblemID:   problem.ID(),
		Description: problem.Description,
		Domain:      problem.Domain,
		Roles:       roleKeys,
		Points:      scoring.Points(priorTexts, scoring.PointsPerResponse),
		RecordedAt:  pctx.CreatedAt(),
	}

	// Recording happens before the call so a failed completion still counts
	// as a seen problem.
	window := []statex.Entry{entry}
	if h := pctx.History(); h != nil {
		window = h.Record(entry)
	}

	input, err := marshalInput(map[string]any{
		"context": pctx,
		"history": window,
	})
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	text, err := a.complete(ctx, a.prompt.System, input)
	if err != nil {
		return contractx.AgentResponse{}, err
	}

	past := make([]string, 0, len(window))
	docs := make([]string, 0, len(window))
	for i, e := range window {
		docs = append(docs, e.Description+" "+strings.Join(e.Points, " "))
		if i < len(window)-1 {
			past = append(past, e.Description)
		}
	}
	lead, _ := pctx.Response(contractx.RoleLeadSolver)

	m := scoring.LearningMetrics(problem.Description, past, lead.Text(), priorTexts, text)
	return a.respond(contractx.AugmentationPayload{
		AugmentedSolution: text,
		LearningMetrics:   learning(m),
		Insights:          scoring.RecurringTerms(docs, maxInsights),
	}), nil
}

func (a *DataAugmentor) Critique(ctx context.Context, proposal contractx.AgentResponse) (contractx.Review, error) {
	return a.critique(ctx, proposal)
}

// Refine keeps the pattern confidence and insights of prior, which depend on
// the history window rather than on the text.
func (a *DataAugmentor) Refine(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (contractx.AgentResponse, error) {
	text, err := a.refineText(ctx, prior, review)
	if err != nil {
		return contractx.AgentResponse{}, err
	}
	prev, _ := prior.Payload.(contractx.AugmentationPayload)

	m := scoring.LearningMetrics("", nil, prev.AugmentedSolution, []string{prev.AugmentedSolution}, text)
	out := learning(m)
	out.PatternConfidence = prev.LearningMetrics.PatternConfidence

	insights := append([]string{}, prev.Insights...)
	return a.respond(contractx.AugmentationPayload{
		AugmentedSolution: text,
		LearningMetrics:   out,
		Insights:          insights,
	}), nil
}

func learning(m scoring.Learning) contractx.LearningMetrics {
	return contractx.LearningMetrics{
		PatternConfidence: m.PatternConfidence,
		ImprovementRate:   m.ImprovementRate,
		KnowledgeCoverage: m.KnowledgeCoverage,
	}
}
