// Package scoring derives bounded [0,1] metrics from response text using
// lexical overlap and marker densities. Every exported score is clamped and
// empty input scores 0.
package scoring

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)?`)
	sentenceRe = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
	bulletRe   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
)

var stopwords = toSet(
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can", "had", "her", "was", "one",
	"our", "out", "has", "have", "his", "how", "its", "let", "into", "than", "then", "them", "these",
	"this", "that", "those", "with", "from", "they", "their", "there", "what", "when", "where", "which",
	"while", "who", "will", "would", "should", "could", "about", "also", "been", "being", "both", "each",
	"more", "most", "other", "some", "such", "only", "own", "same", "very", "just", "over", "under",
	"again", "further", "once", "here", "why", "does", "did", "doing", "because", "until", "between",
	"through", "during", "before", "after", "above", "below", "off", "too", "can't", "won't", "don't",
	"it's", "we", "is", "it", "to", "of", "in", "on", "a", "an", "as", "at", "be", "by", "or", "if", "so",
	"no", "do", "up", "may", "might", "must", "shall", "yet", "via", "per", "use", "using", "make",
)

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

// Terms splits text into lower-cased content terms with plurals folded.
func Terms(text string) []string {
	raw := wordRe.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.TrimSuffix(strings.TrimSuffix(w, "'s"), "’s")
		if _, skip := stopwords[w]; skip {
			continue
		}
		if len(w) < 3 && !isNumeric(w) {
			continue
		}
		out = append(out, stem(w))
	}
	return out
}

func stem(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	default:
		return w
	}
}

func isNumeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return w != ""
}

func TermSet(text string) map[string]struct{} {
	terms := Terms(text)
	out := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		out[t] = struct{}{}
	}
	return out
}

func termFreq(text string) map[string]float64 {
	out := map[string]float64{}
	for _, t := range Terms(text) {
		out[t]++
	}
	return out
}

// KeyTerms returns the k most frequent terms, ties broken alphabetically.
func KeyTerms(text string, k int) []string {
	freq := termFreq(text)
	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if k > 0 && len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

// Sentences splits text into lines, strips list markers, then splits each
// line on terminal punctuation.
func Sentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		for _, s := range sentenceRe.FindAllString(line, -1) {
			s = strings.TrimSpace(s)
			if s == "" || !strings.ContainsFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
				continue
			}
			out = append(out, s)
		}
	}
	return out
}

// Bullets returns list items from text: "-", "*", "•" or numbered lines.
func Bullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			if item := strings.TrimSpace(m[1]); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// normalizeForMarkers lowercases text and replaces punctuation with single
// spaces, padded so phrase markers can be matched on word boundaries.
func normalizeForMarkers(text string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

func hasMarker(sentence string, markers []string) bool {
	norm := normalizeForMarkers(sentence)
	for _, m := range markers {
		if strings.Contains(norm, " "+m+" ") {
			return true
		}
	}
	return false
}

func hasDigit(sentence string) bool {
	return strings.ContainsFunc(sentence, unicode.IsDigit)
}

// Clamp bounds x to [0,1]; NaN becomes 0.
func Clamp(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

// Round keeps scores stable across platforms when serialized.
func Round(x float64) float64 {
	return math.Round(Clamp(x)*1e4) / 1e4
}
