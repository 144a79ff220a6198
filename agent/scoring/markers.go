package scoring

import "strings"

var (
	hedgeMarkers = []string{
		"might", "may", "perhaps", "possibly", "maybe", "unclear", "uncertain", "could", "likely",
		"unlikely", "assume", "assuming", "seems", "appears", "probably", "not sure", "it depends",
	}
	actionMarkers = []string{
		"implement", "use", "add", "reduce", "deploy", "measure", "monitor", "introduce", "replace",
		"adopt", "configure", "cache", "enable", "prioritize", "should", "must", "recommend",
		"start", "establish", "build", "migrate", "set", "limit", "split", "optimize", "run", "test",
		"track", "roll out", "next step", "action",
	}
	evidenceMarkers = []string{
		"because", "since", "data", "evidence", "measured", "benchmark", "benchmarks", "study",
		"studies", "research", "shows", "observed", "according", "percent", "metric", "metrics",
		"experiment", "results", "demonstrated", "documented",
	}
	negativeMarkers = []string{
		"infeasible", "impractical", "unrealistic", "costly", "expensive", "difficult", "risky",
		"problem", "problems", "issue", "issues", "concern", "concerns", "weakness", "flaw", "flaws",
		"fails", "fail", "bottleneck", "limitation", "limitations", "overhead", "unproven",
	}
	gapMarkers = []string{
		"missing", "lacks", "lack", "omits", "overlooks", "ignores", "incomplete", "gap", "gaps",
		"does not address", "fails to consider", "not addressed", "unaddressed",
	}
	noveltyMarkers = []string{
		"novel", "innovative", "creative", "original", "unconventional", "fresh", "new approach",
		"inventive", "clever", "breakthrough",
	}
	inaccuracyMarkers = []string{
		"incorrect", "inaccurate", "false", "wrong", "unsupported", "unverified", "misleading",
		"error", "errors", "mistaken", "outdated", "overstated", "myth", "factually",
	}
	contradictionMarkers = []string{
		"contradict", "contradicts", "contradiction", "contradictory", "inconsistent",
		"inconsistency", "conflicts", "conflicting", "incompatible", "circular", "fallacy",
		"non sequitur", "does not follow", "invalid reasoning",
	}
	riskMarkers = []string{
		"risk", "risks", "threat", "threats", "downside", "danger", "vulnerability", "failure",
		"exposure", "lock in", "debt", "degrade", "degradation", "regression", "outage", "cost overrun",
	}
	opportunityMarkers = []string{
		"opportunity", "opportunities", "advantage", "advantages", "benefit", "benefits", "upside",
		"leverage", "growth", "gain", "gains", "differentiate", "unlock", "competitive",
	}
	shortTermMarkers = []string{
		"short term", "immediate", "immediately", "near term", "quick win", "quick wins", "weeks",
		"right away", "first step", "today",
	}
	mediumTermMarkers = []string{
		"medium term", "mid term", "months", "quarter", "quarters", "next year", "within a year",
	}
	longTermMarkers = []string{
		"long term", "years", "eventually", "sustainable", "sustainability", "roadmap",
		"over time", "future", "ultimately",
	}
)

const maxSelected = 8

// density is the fraction of sentences in text that carry at least one marker.
func density(text string, markers []string) float64 {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return 0
	}
	hits := 0
	for _, s := range sentences {
		if hasMarker(s, markers) {
			hits++
		}
	}
	return Clamp(float64(hits) / float64(len(sentences)))
}

// inverseDensity is 1 - density, except that text without sentences scores 0.
func inverseDensity(text string, markers []string) float64 {
	if len(Sentences(text)) == 0 {
		return 0
	}
	return Clamp(1 - density(text, markers))
}

func evidenceDensity(text string) float64 {
	sentences := Sentences(text)
	if len(sentences) == 0 {
		return 0
	}
	hits := 0
	for _, s := range sentences {
		if hasMarker(s, evidenceMarkers) || hasDigit(s) {
			hits++
		}
	}
	return Clamp(float64(hits) / float64(len(sentences)))
}

// selectSentences returns the distinct sentences carrying a marker, capped.
func selectSentences(text string, markers []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, s := range Sentences(text) {
		if !hasMarker(s, markers) {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == maxSelected {
			break
		}
	}
	return out
}
