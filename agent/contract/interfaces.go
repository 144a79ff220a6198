package contract

import (
	"context"

	statex "github.com/tanpawarit/consensus-solver/agent/state"
)

// Agent is one role-specialised stage of the pipeline. Critique and Refine are
// not driven by the orchestrator; they are kept for a peer-review loop.
type Agent interface {
	Role() Role
	Process(ctx context.Context, pctx *ProblemContext) (AgentResponse, error)
	Critique(ctx context.Context, proposal AgentResponse) (Review, error)
	Refine(ctx context.Context, prior AgentResponse, feedback Review) (AgentResponse, error)
}

// Completer is a single request/response call to an external completion provider.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type Registry interface {
	Agent(role Role) Agent
	Agents() []Agent
}

type History interface {
	Record(entry statex.Entry) []statex.Entry
	Len() int
}
