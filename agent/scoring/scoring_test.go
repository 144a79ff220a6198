package scoring

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermsDropsStopwordsAndFoldsPlurals(t *testing.T) {
	t.Parallel()

	got := Terms("The caches are warming; queries hit 3 replicas.")
	assert.Equal(t, []string{"cache", "warming", "query", "hit", "3", "replica"}, got)
}

func TestJaccardKnownValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Jaccard("latency budget", "budget latency"))
	assert.Equal(t, 0.0, Jaccard("latency budget", "storage engine"))
	// {latency, budget} vs {latency, engine}: 1 shared of 3
	assert.InDelta(t, 1.0/3.0, Jaccard("latency budget", "latency engine"), 1e-9)
	assert.Equal(t, 0.0, Jaccard("", "latency"))
}

func TestCosineKnownValues(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, Cosine("shard shard replica", "shard shard replica"), 1e-9)
	assert.Equal(t, 0.0, Cosine("shard", "index"))
	assert.Equal(t, 0.0, Cosine("", ""))
}

func TestMeanPairwiseCosineNeedsTwoTexts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, MeanPairwiseCosine(nil))
	assert.Equal(t, 0.0, MeanPairwiseCosine([]string{"one lonely response"}))
	assert.InDelta(t, 1.0, MeanPairwiseCosine([]string{"cache layer", "cache layer", "cache layer"}), 1e-9)
}

func TestCoverageAndNovelty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.5, Coverage([]string{"cache", "index"}, "add a cache"))
	assert.Equal(t, 0.0, Coverage(nil, "add a cache"))
	assert.Equal(t, 1.0, Novelty("sharding plan", "cache layer"))
	assert.Equal(t, 0.0, Novelty("", "cache layer"))
}

func TestKeyTermsOrdersByFrequencyThenAlpha(t *testing.T) {
	t.Parallel()

	got := KeyTerms("zebra apple apple mango mango mango", 2)
	assert.Equal(t, []string{"mango", "apple"}, got)
}

func TestSentencesStripsBullets(t *testing.T) {
	t.Parallel()

	got := Sentences("- first item\n2. second item\nThird one! Fourth?")
	assert.Equal(t, []string{"first item", "second item", "Third one!", "Fourth?"}, got)
}

func TestVerificationMetricsReadMarkers(t *testing.T) {
	t.Parallel()

	clean := VerificationMetrics("The benchmark shows 40 percent lower latency. The reasoning holds.")
	assert.Equal(t, 1.0, clean.FactualAccuracy)
	assert.Equal(t, 1.0, clean.LogicalConsistency)
	assert.Equal(t, 0.5, clean.EvidenceStrength)

	flawed := VerificationMetrics("This claim is incorrect. The plan is inconsistent with itself.")
	assert.Equal(t, 0.5, flawed.FactualAccuracy)
	assert.Equal(t, 0.5, flawed.LogicalConsistency)
}

func TestStrategyBreakdownBucketsSentences(t *testing.T) {
	t.Parallel()

	got := StrategyBreakdown("In the short term, add caching. Over the coming months, split the service. " +
		"In the long term, migrate storage. The main risk is an outage. There is an opportunity to cut cost.")
	assert.Equal(t, []string{"In the short term, add caching."}, got.ShortTerm)
	assert.Equal(t, []string{"Over the coming months, split the service."}, got.MediumTerm)
	assert.Equal(t, []string{"In the long term, migrate storage."}, got.LongTerm)
	assert.Equal(t, []string{"The main risk is an outage."}, got.Risks)
	assert.Equal(t, []string{"There is an opportunity to cut cost."}, got.Opportunities)

	empty := StrategyBreakdown("")
	assert.NotNil(t, empty.ShortTerm)
	assert.Empty(t, empty.ShortTerm)
}

func TestRecurringTerms(t *testing.T) {
	t.Parallel()

	got := RecurringTerms([]string{"cache latency", "cache storage", "latency cache"}, 8)
	assert.Equal(t, []string{"cache", "latency"}, got)
	assert.Empty(t, RecurringTerms([]string{"cache latency"}, 8))
}

func TestAgreementMetricsEmptySynthesis(t *testing.T) {
	t.Parallel()

	got := AgreementMetrics("reduce latency", []string{"cache", "cache"}, "   ")
	assert.Equal(t, 0.0, got.Coverage)
	assert.Equal(t, 0.0, got.ResolutionQuality)
	assert.Equal(t, 1.0, got.HarmonyScore)
}

func TestSuggestionsPrefersBullets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"add tests", "measure p99"}, Suggestions("Notes:\n- add tests\n- measure p99\n"))
	assert.Equal(t, []string{"You should monitor errors."}, Suggestions("Looks fine. You should monitor errors."))
}

func TestScoresStayInUnitInterval(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	vocab := []string{
		"cache", "latency", "might", "risk", "incorrect", "benchmark", "long term", "opportunity",
		"missing", "novel", "inconsistent", "implement", "12", "the", "problem", "!", ".", "\n- ",
	}
	randText := func() string {
		n := rng.Intn(40)
		words := make([]string, n)
		for i := range words {
			words[i] = vocab[rng.Intn(len(vocab))]
		}
		return strings.Join(words, " ")
	}

	inUnit := func(name string, v float64) {
		require.GreaterOrEqualf(t, v, 0.0, "%s below 0", name)
		require.LessOrEqualf(t, v, 1.0, "%s above 1", name)
	}

	for i := 0; i < 500; i++ {
		problem, a, b, c := randText(), randText(), randText(), randText()

		inUnit("confidence", Confidence(problem, a))
		asp := CritiqueAspects(problem, a, b)
		inUnit("feasibility", asp.Feasibility)
		inUnit("completeness", asp.Completeness)
		inUnit("innovation", asp.Innovation)
		ver := VerificationMetrics(c)
		inUnit("factual", ver.FactualAccuracy)
		inUnit("logical", ver.LogicalConsistency)
		inUnit("evidence", ver.EvidenceStrength)
		lm := LearningMetrics(problem, []string{a, b}, a, []string{a, b, c}, c)
		inUnit("pattern", lm.PatternConfidence)
		inUnit("improvement", lm.ImprovementRate)
		inUnit("knowledge", lm.KnowledgeCoverage)
		agr := AgreementMetrics(problem, []string{a, b, c}, randText())
		inUnit("harmony", agr.HarmonyScore)
		inUnit("coverage", agr.Coverage)
		inUnit("resolution", agr.ResolutionQuality)
		inUnit("alignment", Alignment(a, b))
	}
}

func TestScoresAreDeterministic(t *testing.T) {
	t.Parallel()

	prior := []string{
		"Add a read-through cache in front of the catalog service.",
		"The cache proposal lacks an invalidation plan.",
		"Benchmarks show 35 percent lower p99 latency with caching.",
	}
	first := AgreementMetrics("reduce catalog latency", prior, "Implement the cache with TTL invalidation.")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AgreementMetrics("reduce catalog latency", prior, "Implement the cache with TTL invalidation."))
	}
}

func TestClampAndRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Clamp(-0.2))
	assert.Equal(t, 1.0, Clamp(3))
	assert.Equal(t, 0.3333, Round(1.0/3.0))
}
