package llm

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	openaicompatx "github.com/tanpawarit/consensus-solver/pkg/openaicompat"
)

// NewCompleters builds one client per provider and returns the completer
// bound to each role, every call bounded by callTimeout.
func NewCompleters(ctx context.Context, cfg Config, callTimeout time.Duration) (map[contractx.Role]contractx.Completer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	byProvider := make(map[Provider]contractx.Completer, len(Providers()))
	for _, p := range Providers() {
		c, err := newCompleter(ctx, cfg.Endpoint(p), callTimeout)
		if err != nil {
			return nil, fmt.Errorf("build %s completer: %w", p, err)
		}
		byProvider[p] = WithTimeout(c, p, callTimeout)
	}

	out := make(map[contractx.Role]contractx.Completer, len(contractx.Roles()))
	for _, role := range contractx.Roles() {
		out[role] = byProvider[ProviderFor(role)]
	}
	return out, nil
}

func newCompleter(ctx context.Context, ep Endpoint, callTimeout time.Duration) (contractx.Completer, error) {
	switch ep.Provider {
	case ProviderOpenAI, ProviderCohere:
		return NewOpenAICompleter(ep)
	case ProviderAnthropic:
		return NewAnthropicCompleter(ep)
	case ProviderGoogle:
		return NewGenAICompleter(ctx, ep)
	case ProviderGroq:
		builder := &openaicompatx.Config{
			BaseURL: ep.BaseURL,
			APIKey:  ep.APIKey,
			Model:   ep.Model,
			Timeout: callTimeout,
		}
		chatModel, err := builder.New(ctx)
		if err != nil {
			return nil, err
		}
		return NewChatModelCompleter(ctx, ep.Provider, ep.Model, chatModel)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", contractx.ErrValidation, ep.Provider)
	}
}

func missingKey(p Provider) error {
	return fmt.Errorf("%w: %s api key is required", contractx.ErrValidation, p)
}
