package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	openaicompatx "github.com/tanpawarit/consensus-solver/pkg/openaicompat"
)

// OpenAICompleter serves any provider reachable through the OpenAI
// chat-completions API with the openai-go client.
type OpenAICompleter struct {
	client   *openai.Client
	provider Provider
	model    string
}

var _ contractx.Completer = (*OpenAICompleter)(nil)

func NewOpenAICompleter(ep Endpoint) (*OpenAICompleter, error) {
	client := openaicompatx.NewClient(openaicompatx.Config{
		BaseURL:    ep.BaseURL,
		APIKey:     ep.APIKey,
		MaxRetries: ep.MaxRetries,
	})
	if client == nil {
		return nil, missingKey(ep.Provider)
	}
	return &OpenAICompleter{client: client, provider: ep.Provider, model: ep.Model}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(pick(req.Model, c.model)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Input),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(float64(req.Temperature))
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", Classify(c.provider, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", malformed(c.provider, "no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func pick(override, fallback string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return fallback
}
