// Package match compares free-text ticket fields (artist, venue, event name)
// against reference strings across Hebrew and English.
package match

import (
	"sort"
	"strings"

	"ticket-verify/internal/hebrew"
)

// DefaultThreshold is the minimum score a candidate must reach to be
// reported by FuzzyMatch.
const DefaultThreshold = 0.6

// Match is one ranked fuzzy-match result. Confidence is Score discounted by
// 0.8 since a fuzzy hit is weaker evidence than an exact one.
type Match struct {
	Match      string  `json:"match"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// normalizeForMatch canonicalizes and lowercases a string for comparison.
func normalizeForMatch(s string) string {
	return strings.ToLower(hebrew.Normalize(s).Text)
}

// Contains reports whether either normalized string contains the other.
// Empty strings never match anything.
func Contains(a, b string) bool {
	na, nb := normalizeForMatch(a), normalizeForMatch(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// FuzzyMatch ranks candidates against text. Containment scores by length
// ratio (near-equal lengths near 1.0); otherwise the score is edit-distance
// based. Candidates below threshold are dropped entirely.
func FuzzyMatch(text string, candidates []string, threshold float64) []Match {
	normalized := normalizeForMatch(text)
	var results []Match

	for _, candidate := range candidates {
		normalizedCandidate := normalizeForMatch(candidate)
		score := similarity(normalized, normalizedCandidate)
		if score < threshold {
			continue
		}
		results = append(results, Match{
			Match:      candidate,
			Score:      score,
			Confidence: score * 0.8,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	longer, shorter := len(ra), len(rb)
	if shorter > longer {
		longer, shorter = shorter, longer
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return float64(shorter) / float64(longer)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longer)
}

// levenshtein is the classic unit-cost edit distance over runes.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
