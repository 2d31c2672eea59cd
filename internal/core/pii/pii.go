// Package pii detects and redacts personally identifiable information in
// medical report text. Detection is pattern based; redaction replaces each
// span with a category placeholder working right to left
package pii

import (
	"fmt"
	"regexp"
	"sort"
)

// Detection categories
const (
	TypeName       = "name"
	TypeIdentifier = "identifier"
	TypeEmail      = "email"
	TypePhone      = "phone"
	TypeDate       = "date"
	TypeAddress    = "address"
)

// Risk levels derived from detection counts
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// Detection is one sensitive span. Start and End are byte offsets
type Detection struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Recommendation is a prioritized handling hint for the caller
type Recommendation struct {
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

type pattern struct {
	typ        string
	re         *regexp.Regexp
	group      int // submatch index to report, 0 for the whole match
	confidence float64
}

var patterns = []pattern{
	{TypeName, regexp.MustCompile(`\b[A-Z][a-z]{2,}\s+[A-Z][a-z]{2,}\b`), 0, 0.85},
	{TypeName, regexp.MustCompile(`\bPatient:?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`), 1, 0.85},
	{TypeIdentifier, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), 0, 0.95},
	{TypeIdentifier, regexp.MustCompile(`\bMRN:?\s*\d+\b`), 0, 0.95},
	{TypeEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), 0, 0.95},
	{TypePhone, regexp.MustCompile(`\b\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`), 0, 0.90},
	{TypeDate, regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`), 0, 0.80},
}

var placeholders = map[string]string{
	TypeName:       "[PATIENT NAME]",
	TypeIdentifier: "[ID REMOVED]",
	TypeEmail:      "[EMAIL ADDRESS]",
	TypePhone:      "[PHONE NUMBER]",
	TypeDate:       "[DATE]",
	TypeAddress:    "[ADDRESS]",
}

// Placeholder returns the redaction token for a detection type
func Placeholder(typ string) string {
	if p, ok := placeholders[typ]; ok {
		return p
	}
	return "[REDACTED]"
}

// Detect scans text and returns deduplicated detections sorted by position.
// When spans overlap the earlier, higher confidence detection wins
func Detect(text string) []Detection {
	var found []Detection
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2*p.group], m[2*p.group+1]
			if start < 0 || end <= start {
				continue
			}
			found = append(found, Detection{
				Type:       p.typ,
				Value:      text[start:end],
				Start:      start,
				End:        end,
				Confidence: p.confidence,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Start != found[j].Start {
			return found[i].Start < found[j].Start
		}
		return found[i].Confidence > found[j].Confidence
	})

	out := found[:0]
	lastEnd := -1
	for _, d := range found {
		if d.Start < lastEnd {
			continue
		}
		out = append(out, d)
		lastEnd = d.End
	}
	return out
}

// Anonymize replaces every detection with its placeholder, right to left
func Anonymize(text string, detections []Detection) string {
	sorted := make([]Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	for _, d := range sorted {
		if d.Start < 0 || d.End > len(text) || d.Start >= d.End {
			continue
		}
		text = text[:d.Start] + Placeholder(d.Type) + text[d.End:]
	}
	return text
}

// Summarize counts detections by type
func Summarize(detections []Detection) map[string]int {
	out := make(map[string]int, len(detections))
	for _, d := range detections {
		out[d.Type]++
	}
	return out
}

// RiskLevel buckets the detection count: at most two is LOW, up to five
// MEDIUM, beyond that HIGH
func RiskLevel(count int) string {
	switch {
	case count > 5:
		return RiskHigh
	case count > 2:
		return RiskMedium
	}
	return RiskLow
}

// ComplianceScore starts at 100 and loses ten points per detection
func ComplianceScore(count int) int {
	score := 100 - 10*count
	if score < 0 {
		score = 0
	}
	return score
}

// Recommendations derives handling guidance from the detections
func Recommendations(detections []Detection) []Recommendation {
	var out []Recommendation
	if len(detections) > 5 {
		out = append(out, Recommendation{
			Priority: "HIGH",
			Message:  fmt.Sprintf("%d sensitive data items detected. Immediate anonymization recommended.", len(detections)),
		})
	}
	for _, d := range detections {
		if d.Type == TypeName {
			out = append(out, Recommendation{
				Priority: "HIGH",
				Message:  "Patient names detected. Ensure HIPAA compliance by anonymizing all personal identifiers.",
			})
			break
		}
	}
	return out
}

// IdentifierIssues counts detections that matter for HIPAA scoring
func IdentifierIssues(detections []Detection) int {
	n := 0
	for _, d := range detections {
		if d.Type == TypeName || d.Type == TypeIdentifier {
			n++
		}
	}
	return n
}

// Redacted reports whether text still contains detectable PII
func Redacted(text string) bool {
	return len(Detect(text)) == 0
}
