package orchestratornode

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

var (
	ErrNilState     = errors.New("run state is nil")
	ErrEmptyProblem = fmt.Errorf("%w: problem description is required", contractx.ErrValidation)
)

// RunState is threaded through every node of one pipeline run. Nodes record
// the first stage fault here before returning it, so the caller can read the
// partial context even when the graph aborts.
type RunState struct {
	RunID     string
	ProblemID string
	StartedAt time.Time

	Context   *contractx.ProblemContext
	Fault     *contractx.StageError
	Consensus *contractx.ConsensusResult
}

func NewRunState(runID string, problem contractx.Problem, now time.Time, history contractx.History) *RunState {
	return &RunState{
		RunID:     runID,
		ProblemID: problem.ID(),
		StartedAt: now.UTC(),
		Context:   contractx.NewProblemContext(problem, now, history),
	}
}

func ValidateRequest(in *RunState) (*RunState, error) {
	if in == nil || in.Context == nil {
		return nil, ErrNilState
	}
	if strings.TrimSpace(in.Context.Problem().Description) == "" {
		return nil, ErrEmptyProblem
	}
	if in.Context.Len() != 0 {
		return nil, fmt.Errorf("%w: run state already holds %d responses", contractx.ErrValidation, in.Context.Len())
	}
	return in, nil
}
