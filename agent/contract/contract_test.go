package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayloads() []Payload {
	return []Payload{
		ProposalPayload{Proposal: "proposal", Confidence: 0.5},
		CritiquePayload{Critique: "critique"},
		VerificationPayload{Verification: "verification"},
		StrategyPayload{StrategicAnalysis: "strategy"},
		AugmentationPayload{AugmentedSolution: "augmented"},
		ConsensusPayload{Consensus: "consensus", SynthesisMethod: "weighted_integration"},
	}
}

func TestRolesOrderAndKeys(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, 6)
	for i, role := range roles {
		assert.Equal(t, i+1, role.Rank())
		back, ok := RoleByKey(role.Key())
		assert.True(t, ok)
		assert.Equal(t, role, back)
	}
	assert.False(t, Role("Oracle").Valid())
	assert.Zero(t, Role("Oracle").Rank())

	roles[0] = "mutated"
	assert.Equal(t, RoleLeadSolver, Roles()[0])
}

func TestNewProblem(t *testing.T) {
	constraints := map[string]any{"budget": "1M"}
	p, err := NewProblem("  Reduce churn  ", " retail ", constraints)
	require.NoError(t, err)
	assert.Equal(t, "Reduce churn", p.Description)
	assert.Equal(t, "retail", p.Domain)

	constraints["budget"] = "2M"
	assert.Equal(t, "1M", p.Constraints["budget"])

	nested := map[string]any{
		"limits":  map[string]any{"latency": "100ms"},
		"regions": []any{"eu", "us"},
		"tags":    []string{"a"},
	}
	p, err = NewProblem("Reduce churn", "", nested)
	require.NoError(t, err)
	nested["limits"].(map[string]any)["latency"] = "1s"
	nested["regions"].([]any)[0] = "apac"
	nested["tags"].([]string)[0] = "b"
	assert.Equal(t, "100ms", p.Constraints["limits"].(map[string]any)["latency"])
	assert.Equal(t, "eu", p.Constraints["regions"].([]any)[0])
	assert.Equal(t, "a", p.Constraints["tags"].([]string)[0])

	_, err = NewProblem(" \n\t", "", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProblemIDDependsOnDescriptionOnly(t *testing.T) {
	a, _ := NewProblem("Plan a launch", "marketing", nil)
	b, _ := NewProblem("Plan a launch", "", map[string]any{"k": 1})
	c, _ := NewProblem("Plan a relaunch", "marketing", nil)

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Len(t, a.ID(), 36)
}

func TestProblemText(t *testing.T) {
	p, _ := NewProblem("Speed up inference", "machine_learning", map[string]any{"max_latency": "100ms"})
	assert.Equal(t, `Speed up inference machine learning {"max_latency":"100ms"}`, p.Text())
}

func TestAppendEnforcesPipelineOrder(t *testing.T) {
	p, _ := NewProblem("x", "", nil)
	pctx := NewProblemContext(p, time.Now(), nil)

	err := pctx.Append(AgentResponse{Role: RoleCritic, Payload: CritiquePayload{}})
	assert.ErrorIs(t, err, ErrValidation)

	err = pctx.Append(AgentResponse{Role: RoleLeadSolver})
	assert.ErrorIs(t, err, ErrValidation)

	err = pctx.Append(AgentResponse{Role: "Oracle", Payload: ProposalPayload{}})
	assert.ErrorIs(t, err, ErrValidation)

	for _, payload := range samplePayloads() {
		require.NoError(t, pctx.Append(AgentResponse{Role: payload.Role(), Payload: payload}))
	}
	assert.Equal(t, Roles(), pctx.Roles())
	assert.Equal(t, 6, pctx.Len())

	err = pctx.Append(AgentResponse{Role: RoleLeadSolver, Payload: ProposalPayload{}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestViewIsDetached(t *testing.T) {
	p, _ := NewProblem("x", "", nil)
	pctx := NewProblemContext(p, time.Now(), nil)
	for _, payload := range samplePayloads()[:3] {
		require.NoError(t, pctx.Append(AgentResponse{Role: payload.Role(), Payload: payload}))
	}

	view := pctx.View(1)
	assert.Equal(t, 1, view.Len())
	assert.Equal(t, 3, pctx.Len())
	assert.Equal(t, 3, pctx.View(10).Len())
	assert.Equal(t, 0, pctx.View(-1).Len())

	resp, ok := pctx.Response(RoleJudgment)
	require.True(t, ok)
	assert.Equal(t, "verification", resp.Text())
	_, ok = view.Response(RoleJudgment)
	assert.False(t, ok)
}

func TestProblemContextJSON(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	p, _ := NewProblem("x", "ops", nil)
	pctx := NewProblemContext(p, created, nil)
	require.NoError(t, pctx.Append(AgentResponse{Role: RoleLeadSolver, Payload: ProposalPayload{Proposal: "do it", Confidence: 0.25}}))

	raw, err := json.Marshal(pctx)
	require.NoError(t, err)

	var out struct {
		Problem        Problem          `json:"problem"`
		AgentResponses []map[string]any `json:"agent_responses"`
		CreatedAt      time.Time        `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "ops", out.Problem.Domain)
	assert.True(t, out.CreatedAt.Equal(created))
	require.Len(t, out.AgentResponses, 1)
	assert.Equal(t, "Lead Problem Solver", out.AgentResponses[0]["role"])
	assert.Equal(t, "do it", out.AgentResponses[0]["proposal"])
	assert.InDelta(t, 0.25, out.AgentResponses[0]["confidence"], 1e-9)
}

func TestPayloadsMatchTheirRoles(t *testing.T) {
	for _, payload := range samplePayloads() {
		assert.True(t, payload.Role().Valid())
		assert.NotEmpty(t, payload.Text())
	}
	var empty AgentResponse
	assert.Empty(t, empty.Text())
}

func TestStageErrorKinds(t *testing.T) {
	fault := &ProviderFault{Provider: "groq", Kind: FaultTimeout, Err: errors.New("slow")}
	stageErr := NewStageError(RoleJudgment, fmt.Errorf("call: %w", fault), nil)

	assert.Equal(t, 3, stageErr.Stage)
	assert.Equal(t, FaultTimeout, stageErr.Kind)
	assert.ErrorIs(t, stageErr, ErrProviderFault)
	assert.Contains(t, stageErr.Error(), "stage 3 (Judgment)")

	agg := NewStageError(RoleConsensusBuilder, fmt.Errorf("%w: missing", ErrAggregation), nil)
	assert.Equal(t, FaultAggregation, agg.Kind)
	assert.NotErrorIs(t, agg, ErrProviderFault)

	assert.Equal(t, FaultUpstream, KindOf(errors.New("other")))
	assert.Equal(t, FaultKind(""), KindOf(nil))
}

func TestConsensusPayloadResult(t *testing.T) {
	p := ConsensusPayload{Consensus: "merged", AgreementMetrics: AgreementMetrics{HarmonyScore: 0.4}}
	assert.Equal(t, ConsensusResult{SynthesisText: "merged", AgreementMetrics: AgreementMetrics{HarmonyScore: 0.4}}, p.Result())
}
