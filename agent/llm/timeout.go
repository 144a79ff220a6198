package llm

import (
	"context"
	"errors"
	"time"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

type timeoutCompleter struct {
	next     contractx.Completer
	provider Provider
	timeout  time.Duration
}

// WithTimeout bounds every call to next by d. A call that outlives d fails
// with a timeout fault. d <= 0 returns next unchanged.
func WithTimeout(next contractx.Completer, provider Provider, d time.Duration) contractx.Completer {
	if d <= 0 {
		return next
	}
	return &timeoutCompleter{next: next, provider: provider, timeout: d}
}

func (c *timeoutCompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.next.Complete(callCtx, req)
	if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", &contractx.ProviderFault{
			Provider: string(c.provider),
			Kind:     contractx.FaultTimeout,
			Err:      err,
		}
	}
	return out, err
}
