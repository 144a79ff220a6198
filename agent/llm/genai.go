package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

type GenAICompleter struct {
	client   *genai.Client
	provider Provider
	model    string
}

var _ contractx.Completer = (*GenAICompleter)(nil)

func NewGenAICompleter(ctx context.Context, ep Endpoint) (*GenAICompleter, error) {
	if ep.APIKey == "" {
		return nil, missingKey(ep.Provider)
	}
	conf := &genai.ClientConfig{
		APIKey:  ep.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if ep.BaseURL != "" {
		conf.HTTPOptions = genai.HTTPOptions{BaseURL: ep.BaseURL + "/"}
	}
	client, err := genai.NewClient(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAICompleter{client: client, provider: ep.Provider, model: ep.Model}, nil
}

func (c *GenAICompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	conf := &genai.GenerateContentConfig{}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		conf.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, pick(req.Model, c.model), genai.Text(req.Input), conf)
	if err != nil {
		return "", Classify(c.provider, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", malformed(c.provider, "no candidates in response")
	}
	return resp.Text(), nil
}
