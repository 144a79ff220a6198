package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// The messages API requires max_tokens on every request.
const defaultAnthropicMaxTokens = 1024

type AnthropicCompleter struct {
	client   anthropic.Client
	provider Provider
	model    string
}

var _ contractx.Completer = (*AnthropicCompleter)(nil)

func NewAnthropicCompleter(ep Endpoint) (*AnthropicCompleter, error) {
	if ep.APIKey == "" {
		return nil, missingKey(ep.Provider)
	}
	opts := []option.RequestOption{option.WithAPIKey(ep.APIKey)}
	if ep.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(ep.BaseURL))
	}
	if ep.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(ep.MaxRetries))
	}
	return &AnthropicCompleter{
		client:   anthropic.NewClient(opts...),
		provider: ep.Provider,
		model:    ep.Model,
	}, nil
}

func (c *AnthropicCompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(pick(req.Model, c.model)),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Input)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", Classify(c.provider, err)
	}
	if msg == nil {
		return "", malformed(c.provider, "nil message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
