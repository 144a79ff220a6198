package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	nodex "github.com/tanpawarit/consensus-solver/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/consensus-solver/agent/state"
	logx "github.com/tanpawarit/consensus-solver/pkg/logger"
)

var (
	ErrNilState     = nodex.ErrNilState
	ErrEmptyProblem = nodex.ErrEmptyProblem
)

type Config struct {
	// ParallelAnalysis runs Critic, Judgment and Strategist concurrently.
	ParallelAnalysis bool
	// SharedHistory hands every run the same learning history instead of a
	// fresh one per run.
	SharedHistory bool
	HistoryCap    int
	// RunTimeout bounds a whole run; zero means no run deadline.
	RunTimeout time.Duration
}

// RunResult is the outcome of one run. Incomplete is set when the run
// deadline expired; Context then holds only the responses appended in time.
type RunResult struct {
	ProblemID  string
	RunID      string
	Context    *contractx.ProblemContext
	Consensus  *contractx.ConsensusResult
	Incomplete bool
	StartedAt  time.Time
	Duration   time.Duration
}

func (r *RunResult) Responses() []contractx.AgentResponse {
	if r == nil || r.Context == nil {
		return nil
	}
	return r.Context.Responses()
}

type Orchestrator struct {
	models contractx.Registry

	graphRunner compose.Runnable[*nodex.RunState, *nodex.RunState]

	parallelAnalysis bool
	runTimeout       time.Duration
	historyCap       int
	shared           *statex.History

	now   func() time.Time
	newID func() string
}

func New(models contractx.Registry, cfg Config) (*Orchestrator, error) {
	if models == nil {
		return nil, errors.New("agent registry is required")
	}
	for _, role := range contractx.Roles() {
		if models.Agent(role) == nil {
			return nil, fmt.Errorf("agent registry has no %s agent", role.Key())
		}
	}

	historyCap := cfg.HistoryCap
	if historyCap <= 0 {
		historyCap = statex.DefaultHistoryCap
	}

	o := &Orchestrator{
		models:           models,
		parallelAnalysis: cfg.ParallelAnalysis,
		runTimeout:       cfg.RunTimeout,
		historyCap:       historyCap,
		now:              time.Now,
		newID:            func() string { return uuid.NewString() },
	}
	if cfg.SharedHistory {
		o.shared = statex.NewHistory(historyCap)
	}

	graphRunner, err := o.compileSolveGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// History returns the shared learning history, or nil in per-run mode.
func (o *Orchestrator) History() *statex.History {
	return o.shared
}

// Solve runs the six stages over problem. A stage fault returns a
// *contractx.StageError with the partial responses; an expired run deadline
// returns an incomplete result and no error.
func (o *Orchestrator) Solve(ctx context.Context, problem contractx.Problem) (*RunResult, error) {
	problem, err := contractx.NewProblem(problem.Description, problem.Domain, problem.Constraints)
	if err != nil {
		return nil, err
	}

	history := o.shared
	if history == nil {
		history = statex.NewHistory(o.historyCap)
	}

	state := nodex.NewRunState(o.newID(), problem, o.now(), history)
	ctx = logx.WithRun(ctx, state.RunID, state.ProblemID)
	logger := logx.From(ctx)

	runCtx := ctx
	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	logger.Info().Bool("parallel_analysis", o.parallelAnalysis).Msg("run started")
	_, err = o.graphRunner.Invoke(runCtx, state)

	result := &RunResult{
		ProblemID: state.ProblemID,
		RunID:     state.RunID,
		Context:   state.Context,
		Consensus: state.Consensus,
		StartedAt: state.StartedAt,
		Duration:  o.now().Sub(state.StartedAt),
	}

	if state.Consensus == nil && runCtx.Err() != nil && ctx.Err() == nil {
		result.Incomplete = true
		logger.Warn().Int("responses", state.Context.Len()).Dur("duration", result.Duration).Msg("run deadline expired")
		return result, nil
	}
	if err != nil {
		if state.Fault != nil {
			logger.Error().Err(state.Fault).Int("stage", state.Fault.Stage).Str("fault", string(state.Fault.Kind)).Msg("run failed")
			return nil, state.Fault
		}
		return nil, fmt.Errorf("run %s: %w", state.RunID, err)
	}
	if state.Consensus == nil {
		return nil, fmt.Errorf("%w: run finished without a consensus", contractx.ErrAggregation)
	}

	logger.Info().Dur("duration", result.Duration).Float64("harmony", state.Consensus.AgreementMetrics.HarmonyScore).Msg("run completed")
	return result, nil
}
