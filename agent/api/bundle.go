package api

import (
	"time"

	"github.com/tanpawarit/consensus-solver/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

type SolveRequest struct {
	Description *string        `json:"description"`
	Domain      string         `json:"domain,omitempty"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	// ProcessingTime is the run duration in seconds.
	ProcessingTime  float64  `json:"processing_time"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Incomplete      bool     `json:"incomplete"`
	RunID           string   `json:"run_id"`
}

// SolutionBundle is the external view of one run. Sections for stages that
// did not complete are null.
type SolutionBundle struct {
	ProblemID         string                    `json:"problem_id"`
	InitialSolution   *contractx.AgentResponse  `json:"initial_solution"`
	Critiques         []contractx.AgentResponse `json:"critiques"`
	Verification      *contractx.AgentResponse  `json:"verification"`
	StrategicAnalysis *contractx.AgentResponse  `json:"strategic_analysis"`
	AugmentedSolution *contractx.AgentResponse  `json:"augmented_solution"`
	FinalConsensus    *contractx.AgentResponse  `json:"final_consensus"`
	Responses         []contractx.AgentResponse `json:"responses"`
	Metadata          Metadata                  `json:"metadata"`
}

type StageFailure struct {
	Error            string                    `json:"error"`
	Stage            string                    `json:"stage"`
	StageIndex       int                       `json:"stage_index"`
	Fault            contractx.FaultKind       `json:"fault"`
	PartialResponses []contractx.AgentResponse `json:"partial_responses"`
}

func NewSolutionBundle(res *orchestrator.RunResult) SolutionBundle {
	responses := res.Responses()
	if responses == nil {
		responses = []contractx.AgentResponse{}
	}

	pick := func(role contractx.Role) *contractx.AgentResponse {
		for i := range responses {
			if responses[i].Role == role {
				r := responses[i]
				return &r
			}
		}
		return nil
	}

	critiques := []contractx.AgentResponse{}
	if c := pick(contractx.RoleCritic); c != nil {
		critiques = append(critiques, *c)
	}

	bundle := SolutionBundle{
		ProblemID:         res.ProblemID,
		InitialSolution:   pick(contractx.RoleLeadSolver),
		Critiques:         critiques,
		Verification:      pick(contractx.RoleJudgment),
		StrategicAnalysis: pick(contractx.RoleStrategist),
		AugmentedSolution: pick(contractx.RoleDataAugmentor),
		FinalConsensus:    pick(contractx.RoleConsensusBuilder),
		Responses:         responses,
		Metadata: Metadata{
			Timestamp:      res.StartedAt,
			ProcessingTime: res.Duration.Seconds(),
			Incomplete:     res.Incomplete,
			RunID:          res.RunID,
		},
	}
	if res.Consensus != nil {
		harmony := res.Consensus.AgreementMetrics.HarmonyScore
		bundle.Metadata.ConfidenceScore = &harmony
	}
	return bundle
}

func NewStageFailure(err *contractx.StageError) StageFailure {
	partial := err.Partial
	if partial == nil {
		partial = []contractx.AgentResponse{}
	}
	return StageFailure{
		Error:            err.Error(),
		Stage:            err.Role.Key(),
		StageIndex:       err.Stage,
		Fault:            err.Kind,
		PartialResponses: partial,
	}
}
