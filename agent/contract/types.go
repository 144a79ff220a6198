package contract

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleLeadSolver       Role = "Lead Problem Solver"
	RoleCritic           Role = "Critic"
	RoleJudgment         Role = "Judgment"
	RoleStrategist       Role = "Strategist"
	RoleDataAugmentor    Role = "Data Augmentor"
	RoleConsensusBuilder Role = "Consensus Builder"
)

var pipelineOrder = []Role{
	RoleLeadSolver,
	RoleCritic,
	RoleJudgment,
	RoleStrategist,
	RoleDataAugmentor,
	RoleConsensusBuilder,
}

var roleKeys = map[Role]string{
	RoleLeadSolver:       "lead_solver",
	RoleCritic:           "critic",
	RoleJudgment:         "judgment",
	RoleStrategist:       "strategist",
	RoleDataAugmentor:    "data_augmentor",
	RoleConsensusBuilder: "consensus_builder",
}

// Roles returns every role in pipeline order.
func Roles() []Role {
	return append([]Role(nil), pipelineOrder...)
}

// Rank is the 1-based stage index of the role, or 0 for an unknown role.
func (r Role) Rank() int {
	for i, role := range pipelineOrder {
		if role == r {
			return i + 1
		}
	}
	return 0
}

// Key is the snake_case identifier used by the /agents listing and the prompt catalog.
func (r Role) Key() string {
	return roleKeys[r]
}

func (r Role) Valid() bool {
	return r.Rank() > 0
}

func (r Role) String() string {
	return string(r)
}

// RoleByKey resolves a snake_case key back to its role.
func RoleByKey(key string) (Role, bool) {
	key = strings.TrimSpace(key)
	for role, k := range roleKeys {
		if k == key {
			return role, true
		}
	}
	return "", false
}

type Problem struct {
	Description string         `json:"description"`
	Domain      string         `json:"domain,omitempty"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

func NewProblem(description, domain string, constraints map[string]any) (Problem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Problem{}, fmt.Errorf("%w: problem description is required", ErrValidation)
	}

	var copied map[string]any
	if len(constraints) > 0 {
		copied = cloneValue(constraints).(map[string]any)
	}

	return Problem{
		Description: description,
		Domain:      strings.TrimSpace(domain),
		Constraints: copied,
	}, nil
}

// cloneValue copies the maps and slices a decoded JSON value can hold so the
// problem never aliases caller data. Other values are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// ConstraintText renders constraints as JSON with sorted keys.
func (p Problem) ConstraintText() string {
	if len(p.Constraints) == 0 {
		return ""
	}
	raw, err := json.Marshal(p.Constraints)
	if err != nil {
		return ""
	}
	return string(raw)
}

// problemNamespace scopes problem ids so equal descriptions map to equal ids.
var problemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("consensus-solver/problem"))

// ID is a deterministic name-based UUID of the description.
func (p Problem) ID() string {
	return uuid.NewSHA1(problemNamespace, []byte(p.Description)).String()
}

// Text joins the parts of the problem that carry its vocabulary.
func (p Problem) Text() string {
	parts := []string{p.Description}
	if p.Domain != "" {
		parts = append(parts, strings.ReplaceAll(p.Domain, "_", " "))
	}
	if c := p.ConstraintText(); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " ")
}

// AgentResponse is produced exactly once per stage and never mutated afterwards.
type AgentResponse struct {
	Role    Role
	Payload Payload
}

func (r AgentResponse) Text() string {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.Text()
}

// MarshalJSON flattens the payload next to the role label.
func (r AgentResponse) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	if r.Payload != nil {
		raw, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", r.Role, err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s payload: %w", r.Role, err)
		}
	}
	fields["role"] = string(r.Role)
	return json.Marshal(fields)
}

// ProblemContext is the append-only record threaded through one pipeline run.
type ProblemContext struct {
	mu        sync.RWMutex
	problem   Problem
	responses []AgentResponse
	createdAt time.Time
	history   History
}

func NewProblemContext(problem Problem, createdAt time.Time, history History) *ProblemContext {
	return &ProblemContext{
		problem:   problem,
		createdAt: createdAt.UTC(),
		history:   history,
	}
}

func (c *ProblemContext) Problem() Problem {
	return c.problem
}

func (c *ProblemContext) CreatedAt() time.Time {
	return c.createdAt
}

// History is the learning log available to this run. It may be nil.
func (c *ProblemContext) History() History {
	return c.history
}

// Append records the next stage response. Responses must arrive in pipeline order.
func (c *ProblemContext) Append(resp AgentResponse) error {
	if !resp.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, resp.Role)
	}
	if resp.Payload == nil {
		return fmt.Errorf("%w: %s response has no payload", ErrValidation, resp.Role)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	want := len(c.responses) + 1
	if resp.Role.Rank() != want {
		return fmt.Errorf("%w: %s belongs to stage %d, next stage is %d", ErrValidation, resp.Role, resp.Role.Rank(), want)
	}
	c.responses = append(c.responses, resp)
	return nil
}

func (c *ProblemContext) Responses() []AgentResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]AgentResponse(nil), c.responses...)
}

func (c *ProblemContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.responses)
}

func (c *ProblemContext) Roles() []Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roles := make([]Role, 0, len(c.responses))
	for _, r := range c.responses {
		roles = append(roles, r.Role)
	}
	return roles
}

// Response returns the recorded response for role, if any.
func (c *ProblemContext) Response(role Role) (AgentResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.responses {
		if r.Role == role {
			return r, true
		}
	}
	return AgentResponse{}, false
}

// View returns a detached copy holding only the first n responses.
func (c *ProblemContext) View(n int) *ProblemContext {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n > len(c.responses) {
		n = len(c.responses)
	}
	if n < 0 {
		n = 0
	}
	return &ProblemContext{
		problem:   c.problem,
		responses: append([]AgentResponse(nil), c.responses[:n]...),
		createdAt: c.createdAt,
		history:   c.history,
	}
}

func (c *ProblemContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Problem        Problem         `json:"problem"`
		AgentResponses []AgentResponse `json:"agent_responses"`
		CreatedAt      time.Time       `json:"created_at"`
	}{
		Problem:        c.problem,
		AgentResponses: c.Responses(),
		CreatedAt:      c.createdAt,
	})
}

type AgreementMetrics struct {
	HarmonyScore      float64 `json:"harmony_score"`
	Coverage          float64 `json:"coverage"`
	ResolutionQuality float64 `json:"resolution_quality"`
}

type ConsensusResult struct {
	SynthesisText    string           `json:"synthesis_text"`
	AgreementMetrics AgreementMetrics `json:"agreement_metrics"`
}

// Review is the peer-review output of Agent.Critique.
type Review struct {
	Role        Role     `json:"role"`
	Target      Role     `json:"target"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions,omitempty"`
	Alignment   float64  `json:"alignment"`
}

type CompletionRequest struct {
	System      string  `json:"system"`
	Input       string  `json:"input"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}
