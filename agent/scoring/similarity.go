package scoring

import "math"

// Jaccard is |A∩B| / |A∪B| over the term sets of a and b.
func Jaccard(a, b string) float64 {
	sa, sb := TermSet(a), TermSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return Clamp(float64(inter) / float64(union))
}

// Cosine is the cosine similarity of the term-frequency vectors of a and b.
func Cosine(a, b string) float64 {
	fa, fb := termFreq(a), termFreq(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}
	var dot, na, nb float64
	for t, x := range fa {
		na += x * x
		if y, ok := fb[t]; ok {
			dot += x * y
		}
	}
	for _, y := range fb {
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return Clamp(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// MeanPairwiseCosine averages Cosine over every unordered pair of texts.
// Fewer than two texts carry no agreement signal and score 0.
func MeanPairwiseCosine(texts []string) float64 {
	if len(texts) < 2 {
		return 0
	}
	var sum float64
	pairs := 0
	for i := 0; i < len(texts); i++ {
		for j := i + 1; j < len(texts); j++ {
			sum += Cosine(texts[i], texts[j])
			pairs++
		}
	}
	return Clamp(sum / float64(pairs))
}

// Coverage is the fraction of distinct points whose term occurs in text.
func Coverage(points []string, text string) float64 {
	want := map[string]struct{}{}
	for _, p := range points {
		for _, t := range Terms(p) {
			want[t] = struct{}{}
		}
	}
	if len(want) == 0 {
		return 0
	}
	have := TermSet(text)
	hit := 0
	for t := range want {
		if _, ok := have[t]; ok {
			hit++
		}
	}
	return Clamp(float64(hit) / float64(len(want)))
}

// Novelty is the fraction of distinct terms in text that base does not contain.
func Novelty(text, base string) float64 {
	st := TermSet(text)
	if len(st) == 0 {
		return 0
	}
	sb := TermSet(base)
	fresh := 0
	for t := range st {
		if _, ok := sb[t]; !ok {
			fresh++
		}
	}
	return Clamp(float64(fresh) / float64(len(st)))
}

// Points collects the k key terms of every text into one de-duplicated list,
// preserving first-seen order.
func Points(texts []string, k int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, text := range texts {
		for _, t := range KeyTerms(text, k) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
