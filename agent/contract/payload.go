package contract

// Payload is the role-specific body of an AgentResponse. The variant set is closed.
type Payload interface {
	Role() Role
	Text() string
	isPayload()
}

var (
	_ Payload = ProposalPayload{}
	_ Payload = CritiquePayload{}
	_ Payload = VerificationPayload{}
	_ Payload = StrategyPayload{}
	_ Payload = AugmentationPayload{}
	_ Payload = ConsensusPayload{}
)

type ProposalPayload struct {
	Proposal   string  `json:"proposal"`
	Confidence float64 `json:"confidence"`
}

func (ProposalPayload) Role() Role { return RoleLeadSolver }
func (p ProposalPayload) Text() string { return p.Proposal }
func (ProposalPayload) isPayload() {}

type CritiqueAspects struct {
	Feasibility  float64 `json:"feasibility"`
	Completeness float64 `json:"completeness"`
	Innovation   float64 `json:"innovation"`
}

type CritiquePayload struct {
	Critique string          `json:"critique"`
	Aspects  CritiqueAspects `json:"aspects"`
}

func (CritiquePayload) Role() Role { return RoleCritic }
func (p CritiquePayload) Text() string { return p.Critique }
func (CritiquePayload) isPayload() {}

type VerificationMetrics struct {
	FactualAccuracy    float64 `json:"factual_accuracy"`
	LogicalConsistency float64 `json:"logical_consistency"`
	EvidenceStrength   float64 `json:"evidence_strength"`
}

type VerificationPayload struct {
	Verification string              `json:"verification"`
	Metrics      VerificationMetrics `json:"metrics"`
}

func (VerificationPayload) Role() Role { return RoleJudgment }
func (p VerificationPayload) Text() string { return p.Verification }
func (VerificationPayload) isPayload() {}

type Implications struct {
	ShortTerm  []string `json:"short_term"`
	MediumTerm []string `json:"medium_term"`
	LongTerm   []string `json:"long_term"`
}

type StrategyPayload struct {
	StrategicAnalysis string       `json:"strategic_analysis"`
	Implications      Implications `json:"implications"`
	Risks             []string     `json:"risks"`
	Opportunities     []string     `json:"opportunities"`
}

func (StrategyPayload) Role() Role { return RoleStrategist }
func (p StrategyPayload) Text() string { return p.StrategicAnalysis }
func (StrategyPayload) isPayload() {}

type LearningMetrics struct {
	PatternConfidence float64 `json:"pattern_confidence"`
	ImprovementRate   float64 `json:"improvement_rate"`
	KnowledgeCoverage float64 `json:"knowledge_coverage"`
}

type AugmentationPayload struct {
	AugmentedSolution string          `json:"augmented_solution"`
	LearningMetrics   LearningMetrics `json:"learning_metrics"`
	Insights          []string        `json:"insights"`
}

func (AugmentationPayload) Role() Role { return RoleDataAugmentor }
func (p AugmentationPayload) Text() string { return p.AugmentedSolution }
func (AugmentationPayload) isPayload() {}

type ConsensusPayload struct {
	Consensus        string           `json:"consensus"`
	AgreementMetrics AgreementMetrics `json:"agreement_metrics"`
	SynthesisMethod  string           `json:"synthesis_method"`
}

func (ConsensusPayload) Role() Role { return RoleConsensusBuilder }
func (p ConsensusPayload) Text() string { return p.Consensus }
func (ConsensusPayload) isPayload() {}

// Result converts the payload into the terminal artifact of a run.
func (p ConsensusPayload) Result() ConsensusResult {
	return ConsensusResult{
		SynthesisText:    p.Consensus,
		AgreementMetrics: p.AgreementMetrics,
	}
}
