// Package similarity provides normalized edit distance scoring for fuzzy
// matching of medical terms and abbreviations
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match thresholds used by the detector and the knowledge retriever
const (
	// Strong is the floor for treating two tokens as the same term
	Strong = 0.8

	// Weak is the floor for surfacing a candidate at all
	Weak = 0.6
)

// Score returns a similarity score in [0, 1] where 1 means equal.
// Comparison is case insensitive and rune aware
func Score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(longest-d) / float64(longest)
}
