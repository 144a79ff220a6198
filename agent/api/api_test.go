package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanpawarit/consensus-solver/agent/agents/orchestrator"
	"github.com/tanpawarit/consensus-solver/agent/agents/roles"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
)

type echoCompleter struct{}

func (echoCompleter) Complete(context.Context, contractx.CompletionRequest) (string, error) {
	return "1. Reduce cost of the plan.\n2. Increase team capacity.", nil
}

type fakeSolver struct {
	calls atomic.Int32
	solve func(problem contractx.Problem) (*orchestrator.RunResult, error)
}

func (f *fakeSolver) Solve(_ context.Context, problem contractx.Problem) (*orchestrator.RunResult, error) {
	f.calls.Add(1)
	return f.solve(problem)
}

func newTestServer(t *testing.T, solver Solver) *httptest.Server {
	t.Helper()

	completers := map[contractx.Role]contractx.Completer{}
	for _, role := range contractx.Roles() {
		completers[role] = echoCompleter{}
	}
	models, err := roles.NewRegistryWith(completers, promptx.MustLoadPromptSet())
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(solver, models, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func fullRun(problem contractx.Problem) *orchestrator.RunResult {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	pctx := contractx.NewProblemContext(problem, started, nil)
	consensus := contractx.ConsensusPayload{
		Consensus:        "agreed plan",
		AgreementMetrics: contractx.AgreementMetrics{HarmonyScore: 0.75, Coverage: 0.5, ResolutionQuality: 0.6},
		SynthesisMethod:  "weighted_integration",
	}
	payloads := []contractx.Payload{
		contractx.ProposalPayload{Proposal: "proposal", Confidence: 0.8},
		contractx.CritiquePayload{Critique: "critique"},
		contractx.VerificationPayload{Verification: "verification"},
		contractx.StrategyPayload{StrategicAnalysis: "strategy"},
		contractx.AugmentationPayload{AugmentedSolution: "augmented", Insights: []string{"cost"}},
		consensus,
	}
	for _, p := range payloads {
		if err := pctx.Append(contractx.AgentResponse{Role: p.Role(), Payload: p}); err != nil {
			panic(err)
		}
	}
	result := consensus.Result()
	return &orchestrator.RunResult{
		ProblemID: problem.ID(),
		RunID:     "run-1",
		Context:   pctx,
		Consensus: &result,
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
	}
}

func post(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/solve", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeSolver{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", out["status"])
	assert.EqualValues(t, 6, out["agents_available"])
	assert.Equal(t, Version, out["version"])
	assert.NotEmpty(t, out["timestamp"])
}

func TestListAgents(t *testing.T) {
	srv := newTestServer(t, &fakeSolver{})

	resp, err := http.Get(srv.URL + "/agents")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, map[string]string{
		"lead_solver":       "Lead Problem Solver Agent",
		"critic":            "Critic Agent",
		"judgment":          "Judgment Agent",
		"strategist":        "Strategist Agent",
		"data_augmentor":    "Data Augmentor Agent",
		"consensus_builder": "Consensus Builder Agent",
	}, out)
}

func TestSolveRejectsBadRequestsWithoutCalls(t *testing.T) {
	solver := &fakeSolver{}
	srv := newTestServer(t, solver)

	cases := map[string]string{
		"not json":            `{"description":`,
		"missing description": `{"domain":"business"}`,
		"blank description":   `{"description":"   "}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, out := post(t, srv, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
	assert.Zero(t, solver.calls.Load())
}

func TestSolveReturnsBundle(t *testing.T) {
	var got contractx.Problem
	solver := &fakeSolver{solve: func(p contractx.Problem) (*orchestrator.RunResult, error) {
		got = p
		return fullRun(p), nil
	}}
	srv := newTestServer(t, solver)

	body := `{"description":"  Cut delivery costs  ","domain":"business_strategy","constraints":{"budget":"1M"}}`
	resp, out := post(t, srv, body)
	require.Equal(t, http.StatusOK, resp.StatusCode, out)

	assert.Equal(t, "Cut delivery costs", got.Description)
	assert.Equal(t, "business_strategy", got.Domain)
	assert.Equal(t, got.ID(), out["problem_id"])

	initial := out["initial_solution"].(map[string]any)
	assert.Equal(t, "proposal", initial["proposal"])
	assert.Equal(t, string(contractx.RoleLeadSolver), initial["role"])
	assert.Len(t, out["critiques"], 1)
	assert.Len(t, out["responses"], 6)

	final := out["final_consensus"].(map[string]any)
	assert.Equal(t, "agreed plan", final["consensus"])

	meta := out["metadata"].(map[string]any)
	assert.InDelta(t, 0.75, meta["confidence_score"], 1e-9)
	assert.InDelta(t, 1.5, meta["processing_time"], 1e-9)
	assert.Equal(t, false, meta["incomplete"])
	assert.Equal(t, "run-1", meta["run_id"])
}

func TestSolveSameDescriptionSameProblemID(t *testing.T) {
	solver := &fakeSolver{solve: func(p contractx.Problem) (*orchestrator.RunResult, error) {
		return fullRun(p), nil
	}}
	srv := newTestServer(t, solver)

	_, first := post(t, srv, `{"description":"Plan a launch"}`)
	_, second := post(t, srv, `{"description":"Plan a launch","domain":"marketing"}`)
	assert.Equal(t, first["problem_id"], second["problem_id"])
}

func TestSolveIncompleteRunIsOK(t *testing.T) {
	solver := &fakeSolver{solve: func(p contractx.Problem) (*orchestrator.RunResult, error) {
		pctx := contractx.NewProblemContext(p, time.Now(), nil)
		err := pctx.Append(contractx.AgentResponse{
			Role:    contractx.RoleLeadSolver,
			Payload: contractx.ProposalPayload{Proposal: "draft"},
		})
		if err != nil {
			return nil, err
		}
		return &orchestrator.RunResult{ProblemID: p.ID(), Context: pctx, Incomplete: true}, nil
	}}
	srv := newTestServer(t, solver)

	resp, out := post(t, srv, `{"description":"Plan a launch"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, out["initial_solution"])
	assert.Nil(t, out["final_consensus"])
	assert.Empty(t, out["critiques"])

	meta := out["metadata"].(map[string]any)
	assert.Equal(t, true, meta["incomplete"])
	assert.Nil(t, meta["confidence_score"])
}

func TestSolveStageFailureNamesStage(t *testing.T) {
	partial := []contractx.AgentResponse{{
		Role:    contractx.RoleLeadSolver,
		Payload: contractx.ProposalPayload{Proposal: "draft"},
	}}
	solver := &fakeSolver{solve: func(contractx.Problem) (*orchestrator.RunResult, error) {
		fault := &contractx.ProviderFault{Provider: "anthropic", Kind: contractx.FaultRateLimit, Err: errors.New("429")}
		return nil, contractx.NewStageError(contractx.RoleCritic, fault, partial)
	}}
	srv := newTestServer(t, solver)

	resp, out := post(t, srv, `{"description":"Plan a launch"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "critic", out["stage"])
	assert.EqualValues(t, 2, out["stage_index"])
	assert.Equal(t, string(contractx.FaultRateLimit), out["fault"])
	assert.Len(t, out["partial_responses"], 1)
	assert.Contains(t, out["error"], "rate_limit")
}

func TestSolveUnexpectedError(t *testing.T) {
	solver := &fakeSolver{solve: func(contractx.Problem) (*orchestrator.RunResult, error) {
		return nil, errors.New("boom")
	}}
	srv := newTestServer(t, solver)

	resp, out := post(t, srv, `{"description":"Plan a launch"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "boom", out["error"])
}
