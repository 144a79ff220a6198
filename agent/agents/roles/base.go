package roles

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	llmx "github.com/tanpawarit/consensus-solver/agent/llm"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
	"github.com/tanpawarit/consensus-solver/agent/scoring"
)

// base carries what every role shares: its instructions, its completer and
// the one-call-per-operation discipline.
type base struct {
	role      contractx.Role
	provider  llmx.Provider
	completer contractx.Completer
	prompt    promptx.RolePrompt
}

func newBase(role contractx.Role, completer contractx.Completer, prompt promptx.RolePrompt) (base, error) {
	if completer == nil {
		return base{}, fmt.Errorf("%w: no completer for %s", contractx.ErrValidation, role)
	}
	return base{
		role:      role,
		provider:  llmx.ProviderFor(role),
		completer: completer,
		prompt:    prompt,
	}, nil
}

func (b *base) Role() contractx.Role {
	return b.role
}

func (b *base) String() string {
	return Label(b.role)
}

// Label is the display name of an agent, e.g. "Critic Agent".
func Label(role contractx.Role) string {
	return string(role) + " Agent"
}

// complete issues exactly one provider call and rejects blank output.
func (b *base) complete(ctx context.Context, system, input string) (string, error) {
	logger := zerolog.Ctx(ctx).With().Str("role", b.role.Key()).Str("provider", string(b.provider)).Logger()

	out, err := b.completer.Complete(ctx, contractx.CompletionRequest{
		System:      system,
		Input:       input,
		Temperature: b.prompt.Temperature,
		MaxTokens:   b.prompt.MaxTokens,
	})
	if err != nil {
		err = llmx.Classify(b.provider, err)
		logger.Warn().Err(err).Str("fault", string(contractx.KindOf(err))).Msg("completion failed")
		return "", err
	}

	text := strings.TrimSpace(out)
	if text == "" {
		logger.Warn().Msg("completion returned no text")
		return "", &contractx.ProviderFault{
			Provider: string(b.provider),
			Kind:     contractx.FaultMalformedResponse,
			Err:      fmt.Errorf("%w: %s returned blank text", llmx.ErrEmptyCompletion, b.provider),
		}
	}

	logger.Debug().Int("chars", len(text)).Msg("completion received")
	return text, nil
}

// processContext serializes pctx and runs the role's system instruction on it.
func (b *base) processContext(ctx context.Context, pctx *contractx.ProblemContext) (string, error) {
	if pctx == nil {
		return "", fmt.Errorf("%w: problem context is required", contractx.ErrValidation)
	}
	input, err := marshalInput(pctx)
	if err != nil {
		return "", err
	}
	return b.complete(ctx, b.prompt.System, input)
}

func (b *base) critique(ctx context.Context, target contractx.AgentResponse) (contractx.Review, error) {
	if target.Payload == nil {
		return contractx.Review{}, fmt.Errorf("%w: response to review has no payload", contractx.ErrValidation)
	}
	input, err := marshalInput(map[string]any{
		"reviewer": b.role,
		"response": target,
	})
	if err != nil {
		return contractx.Review{}, err
	}

	feedback, err := b.complete(ctx, b.prompt.Critique, input)
	if err != nil {
		return contractx.Review{}, err
	}

	return contractx.Review{
		Role:        b.role,
		Target:      target.Role,
		Feedback:    feedback,
		Suggestions: scoring.Suggestions(feedback),
		Alignment:   scoring.Alignment(feedback, target.Text()),
	}, nil
}

// refineText asks for a revision of prior in light of review and returns the
// revised text. prior must belong to this role.
func (b *base) refineText(ctx context.Context, prior contractx.AgentResponse, review contractx.Review) (string, error) {
	if prior.Role != b.role || prior.Payload == nil || prior.Payload.Role() != b.role {
		return "", fmt.Errorf("%w: %s cannot refine a %s response", contractx.ErrValidation, b.role, prior.Role)
	}
	input, err := marshalInput(map[string]any{
		"response": prior,
		"review":   review,
	})
	if err != nil {
		return "", err
	}
	return b.complete(ctx, b.prompt.Refine, input)
}

func (b *base) respond(payload contractx.Payload) contractx.AgentResponse {
	return contractx.AgentResponse{Role: b.role, Payload: payload}
}

func marshalInput(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: serialize agent input: %v", contractx.ErrValidation, err)
	}
	return string(raw), nil
}

// texts returns the primary text of each response in order.
func texts(responses []contractx.AgentResponse) []string {
	out := make([]string, 0, len(responses))
	for _, r := range responses {
		out = append(out, r.Text())
	}
	return out
}
