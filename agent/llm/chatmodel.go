package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// ChatModelCompleter runs each request through a compiled prompt -> model
// graph over an eino chat model.
type ChatModelCompleter struct {
	runner   compose.Runnable[map[string]any, *schema.Message]
	provider Provider
	model    string
}

var _ contractx.Completer = (*ChatModelCompleter)(nil)

func NewChatModelCompleter(ctx context.Context, provider Provider, defaultModel string, chatModel einomodel.BaseChatModel) (*ChatModelCompleter, error) {
	runner, err := compileCompletionGraph(ctx, chatModel, fmt.Sprintf("llm.%s_completion_graph", provider))
	if err != nil {
		return nil, err
	}
	return &ChatModelCompleter{runner: runner, provider: provider, model: defaultModel}, nil
}

func (c *ChatModelCompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	opts := []einomodel.Option{einomodel.WithModel(pick(req.Model, c.model))}
	if req.Temperature > 0 {
		opts = append(opts, einomodel.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, einomodel.WithMaxTokens(req.MaxTokens))
	}

	msg, err := c.runner.Invoke(ctx, map[string]any{
		"system": req.System,
		"input":  req.Input,
	}, compose.WithChatModelOption(opts...))
	if err != nil {
		return "", Classify(c.provider, err)
	}
	if msg == nil {
		return "", malformed(c.provider, "nil message")
	}
	return msg.Content, nil
}

func compileCompletionGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	graphName string,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add completion prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add completion model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add completion edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add completion edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add completion edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		return nil, fmt.Errorf("compile completion graph: %w", err)
	}
	return runner, nil
}
