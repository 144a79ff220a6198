package scoring

import "sort"

// PointsPerResponse is how many key terms of each prior response count as
// its distinct points when measuring coverage.
const PointsPerResponse = 8

// Confidence rates a proposal by how much of the problem it addresses and
// how little it hedges.
func Confidence(problem, proposal string) float64 {
	if len(Terms(proposal)) == 0 {
		return 0
	}
	relevance := Coverage([]string{problem}, proposal)
	return Round(0.6*relevance + 0.4*inverseDensity(proposal, hedgeMarkers))
}

type Aspects struct {
	Feasibility  float64
	Completeness float64
	Innovation   float64
}

// CritiqueAspects scores the reviewed proposal through the critique of it.
func CritiqueAspects(problem, proposal, critique string) Aspects {
	if len(Terms(critique)) == 0 {
		return Aspects{}
	}
	return Aspects{
		Feasibility:  Round(inverseDensity(critique, negativeMarkers)),
		Completeness: Round(0.7*Coverage([]string{problem}, proposal) + 0.3*inverseDensity(critique, gapMarkers)),
		Innovation:   Round(0.5*Novelty(proposal, problem) + 0.5*density(critique, noveltyMarkers)),
	}
}

type Verification struct {
	FactualAccuracy    float64
	LogicalConsistency float64
	EvidenceStrength   float64
}

func VerificationMetrics(verification string) Verification {
	return Verification{
		FactualAccuracy:    Round(inverseDensity(verification, inaccuracyMarkers)),
		LogicalConsistency: Round(inverseDensity(verification, contradictionMarkers)),
		EvidenceStrength:   Round(evidenceDensity(verification)),
	}
}

type Strategy struct {
	ShortTerm     []string
	MediumTerm    []string
	LongTerm      []string
	Risks         []string
	Opportunities []string
}

// StrategyBreakdown buckets the sentences of a strategic analysis by horizon
// and pulls out the risks and opportunities it names.
func StrategyBreakdown(analysis string) Strategy {
	return Strategy{
		ShortTerm:     selectSentences(analysis, shortTermMarkers),
		MediumTerm:    selectSentences(analysis, mediumTermMarkers),
		LongTerm:      selectSentences(analysis, longTermMarkers),
		Risks:         selectSentences(analysis, riskMarkers),
		Opportunities: selectSentences(analysis, opportunityMarkers),
	}
}

type Learning struct {
	PatternConfidence float64
	ImprovementRate   float64
	KnowledgeCoverage float64
}

// LearningMetrics compares the augmented solution with the lead proposal and
// the prior responses, and the current problem with past ones.
func LearningMetrics(problem string, pastProblems []string, leadProposal string, priorTexts []string, augmented string) Learning {
	var pattern float64
	for _, past := range pastProblems {
		if j := Jaccard(problem, past); j > pattern {
			pattern = j
		}
	}
	return Learning{
		PatternConfidence: Round(pattern),
		ImprovementRate:   Round(Novelty(augmented, leadProposal)),
		KnowledgeCoverage: Round(Coverage(Points(priorTexts, PointsPerResponse), augmented)),
	}
}

// RecurringTerms returns terms found in at least two of the documents, most
// frequent first, capped at limit.
func RecurringTerms(docs []string, limit int) []string {
	counts := map[string]int{}
	for _, d := range docs {
		for t := range TermSet(d) {
			counts[t]++
		}
	}
	out := []string{}
	for t, n := range counts {
		if n >= 2 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Agreement struct {
	HarmonyScore      float64
	Coverage          float64
	ResolutionQuality float64
}

// AgreementMetrics scores a synthesis against the responses it summarises.
func AgreementMetrics(problem string, priorTexts []string, synthesis string) Agreement {
	if len(Terms(synthesis)) == 0 {
		return Agreement{HarmonyScore: Round(MeanPairwiseCosine(priorTexts))}
	}
	resolution := 0.4*Coverage([]string{problem}, synthesis) +
		0.35*density(synthesis, actionMarkers) +
		0.25*inverseDensity(synthesis, hedgeMarkers)
	return Agreement{
		HarmonyScore:      Round(MeanPairwiseCosine(priorTexts)),
		Coverage:          Round(Coverage(Points(priorTexts, PointsPerResponse), synthesis)),
		ResolutionQuality: Round(resolution),
	}
}

// Suggestions pulls actionable items from review text: bullet lines first,
// otherwise sentences that carry an action marker.
func Suggestions(text string) []string {
	if items := Bullets(text); len(items) > 0 {
		if len(items) > maxSelected {
			items = items[:maxSelected]
		}
		return items
	}
	return selectSentences(text, actionMarkers)
}

// Alignment is how closely a review tracks the text it reviews.
func Alignment(review, target string) float64 {
	return Round(Cosine(review, target))
}
