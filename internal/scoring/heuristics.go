package scoring

import (
	"strings"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Criterion heuristics operate on a 0-10 raw scale and are scaled to the
// criterion's point cap by the category builders. Everything here is pure
// string work; no I/O, no randomness, no clocks.

// clamp bounds v to [0, max].
func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// lookup returns the table entry for a category, falling back to the
// CategoryOther entry for anything unrecognized.
func lookup(table map[models.MarketCategory]float64, cat models.MarketCategory) float64 {
	if v, ok := table[cat]; ok {
		return v
	}
	return table[models.CategoryOther]
}

// keywordHits counts occurrences of each keyword in text,
// case-insensitively. Substring matching is intentional: "integrat"
// catches integrate/integration.
func keywordHits(text string, keywords ...string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		hits += strings.Count(lower, strings.ToLower(kw))
	}
	return hits
}

// keywordScore adds perHit for every keyword occurrence on top of base,
// clamped to the 0-10 raw scale.
func keywordScore(text string, base, perHit float64, keywords ...string) float64 {
	return clamp(base+perHit*float64(keywordHits(text, keywords...)), 10)
}

// inverseKeywordScore subtracts perHit for every occurrence; used where
// a keyword signals risk rather than strength.
func inverseKeywordScore(text string, base, perHit float64, keywords ...string) float64 {
	return clamp(base-perHit*float64(keywordHits(text, keywords...)), 10)
}

// wordCount counts whitespace-separated words.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// bandScore rewards text whose word count sits inside [min, max]: full
// marks inside the band, proportional below it, a flat 6 above it
// (rambling is weaker signal than absence).
func bandScore(text string, min, max int) float64 {
	n := wordCount(text)
	switch {
	case n == 0:
		return 0
	case n < min:
		return clamp(10*float64(n)/float64(min), 10)
	case n <= max:
		return 10
	default:
		return 6
	}
}

// sharedWordScore scores lexical overlap between two texts: shared words
// longer than three characters divided by the union, scaled to 0-10.
func sharedWordScore(a, b string) float64 {
	setA := significantWords(a)
	setB := significantWords(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	union := len(setB)
	for w := range setA {
		if setB[w] {
			shared++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return clamp(10*float64(shared)/float64(union)*4, 10)
}

// significantWords returns the set of lowercase words longer than three
// characters.
func significantWords(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?()\"'")
		if len(w) > 3 {
			set[w] = true
		}
	}
	return set
}
