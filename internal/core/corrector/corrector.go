// Package corrector turns detector candidates into correction records and
// applies them to report text. Records carry the tooltip metadata shown to
// reviewers; Apply rewrites the text deterministically and skips records
// whose span no longer matches the text
package corrector

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"medixscan/internal/core/detector"
	"medixscan/internal/core/lexicon"
)

// Record is one correction plus its tooltip metadata
type Record struct {
	Error          string  `json:"error"`
	Suggestion     string  `json:"suggestion"`
	Recommendation string  `json:"recommendation"`
	Position       [2]int  `json:"position"`
	Type           string  `json:"error_type"`
	Confidence     float64 `json:"confidence"`
	Subtype        string  `json:"subtype,omitempty"`
	Source         string  `json:"source,omitempty"`
	Category       string  `json:"category,omitempty"`
	Definition     string  `json:"definition,omitempty"`
	Context        string  `json:"context,omitempty"`
	RAG            bool    `json:"rag_sourced,omitempty"`
}

// Corrector generates records from candidates using the lexicon
type Corrector struct {
	pack *lexicon.Pack
}

// New builds a Corrector around a compiled lexicon
func New(pack *lexicon.Pack) *Corrector {
	if pack == nil {
		panic("corrector: nil lexicon pack")
	}
	return &Corrector{pack: pack}
}

// Generate builds the record for a candidate. It returns false when no
// usable suggestion exists, in which case the candidate is dropped
func (c *Corrector) Generate(cand detector.Candidate) (Record, bool) {
	rec := Record{
		Error:      cand.Original,
		Suggestion: cand.Suggestion,
		Position:   [2]int{cand.Start, cand.End},
		Type:       string(cand.Kind),
		Confidence: cand.Confidence,
		Subtype:    cand.Subtype,
		Source:     cand.Source,
		Category:   cand.Category,
		Definition: cand.Definition,
		Context:    cand.Context,
		RAG:        cand.RAG,
	}

	switch cand.Kind {
	case detector.KindSpelling:
		rec.Recommendation = "Spelling correction"

	case detector.KindTerminology:
		switch {
		case cand.RAG && cand.Definition != "":
			rec.Recommendation = "Medical knowledge base: " + cand.Definition
		case cand.Definition != "":
			rec.Recommendation = "Standard abbreviation: " + cand.Definition
		default:
			rec.Recommendation = "Medical terminology correction"
		}

	case detector.KindGrammar:
		rec.Recommendation = c.pack.Recommendation(cand.Subtype)
		fix, ok := grammarFix(cand.Subtype, cand.Original)
		if !ok {
			return Record{}, false
		}
		rec.Suggestion = fix

	case detector.KindConsistency:
		past, ok := c.pack.VerbMap[strings.ToLower(cand.Original)]
		if !ok {
			return Record{}, false
		}
		rec.Suggestion = detector.StyleLike(cand.Original, past)
		rec.Recommendation = "Use past tense for report consistency"

	default:
		return Record{}, false
	}

	// exact, not folded: capitalization fixes differ only by case
	if rec.Suggestion == "" || rec.Suggestion == rec.Error {
		return Record{}, false
	}
	return rec, true
}

// grammarFix rewrites a grammar rule match. Tense agreement subtypes have
// no mechanical rewrite and report false
func grammarFix(subtype, original string) (string, bool) {
	switch subtype {
	case "article_before_vowel":
		if strings.HasPrefix(original, "A") {
			return "An" + original[1:], true
		}
		if strings.HasPrefix(original, "a") {
			return "an" + original[1:], true
		}
	case "article_before_consonant":
		lower := strings.ToLower(original)
		if strings.HasPrefix(lower, "an") && len(original) > 2 {
			return original[:1] + original[2:], true
		}
	case "capitalize_after_period":
		return strings.ToUpper(original), true
	case "multiple_spaces":
		return " ", true
	case "doctor_title_capitalization":
		return titleFix("Dr.", original), true
	case "mister_title_capitalization":
		return titleFix("Mr.", original), true
	case "missus_title_capitalization":
		return titleFix("Mrs.", original), true
	case "ms_title_capitalization":
		return titleFix("Ms.", original), true
	}
	return "", false
}

// titleFix rebuilds an unpunctuated title match such as "dr s" as "Dr. S"
func titleFix(title, original string) string {
	var initial rune
	for _, r := range original {
		if unicode.IsLetter(r) {
			initial = r
		}
	}
	return title + " " + string(unicode.ToUpper(initial))
}

// Dedup drops records that overlap an earlier, higher confidence record.
// The result is sorted by position
func Dedup(recs []Record) []Record {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position[0] != sorted[j].Position[0] {
			return sorted[i].Position[0] < sorted[j].Position[0]
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	out := sorted[:0]
	lastEnd := -1
	for _, r := range sorted {
		if r.Position[0] < lastEnd {
			continue
		}
		out = append(out, r)
		lastEnd = r.Position[1]
	}
	return out
}

// Apply rewrites text right to left so earlier spans stay valid. Records
// whose span no longer matches the text are skipped, and replacements are
// restyled to the capitalization found at the span
func Apply(text string, recs []Record) string {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position[0] > sorted[j].Position[0]
	})

	for _, r := range sorted {
		start, end := r.Position[0], r.Position[1]
		if r.Suggestion == "" || start < 0 || end > len(text) || start >= end {
			continue
		}
		actual := text[start:end]
		if !strings.EqualFold(actual, r.Error) {
			continue
		}
		text = text[:start] + detector.StyleLike(actual, r.Suggestion) + text[end:]
	}
	return text
}

// Score summarizes correction confidence for a whole report. An error free
// report scores 1.0; otherwise the mean record confidence is discounted by
// error density, floored at 0.1 and rounded to two decimals
func Score(text string, recs []Record) float64 {
	if len(recs) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, r := range recs {
		sum += r.Confidence
	}
	avg := sum / float64(len(recs))

	words := len(strings.Fields(text))
	if words == 0 {
		words = 1
	}
	penalty := 0.5 * float64(len(recs)) / float64(words)
	if penalty > 0.3 {
		penalty = 0.3
	}

	score := avg - penalty
	if score < 0.1 {
		score = 0.1
	}
	return math.Round(score*100) / 100
}
