// Package detector scans medical report text for correctable spans.
// It runs fixed passes over the text in order: misspelling dictionary,
// grammar rules, knowledge base terminology, imaging abbreviations and
// tense consistency. Each hit is returned as a Candidate with a half open
// byte span into the original text
package detector

import (
	"context"
	"regexp"
	"strings"

	"medixscan/internal/core/lexicon"
	"medixscan/internal/core/similarity"
)

// Kind labels the detection pass that produced a candidate
type Kind string

// Candidate kinds, also the wire values for error_type
const (
	KindSpelling    Kind = "spelling"
	KindGrammar     Kind = "grammar"
	KindTerminology Kind = "medical_terminology"
	KindConsistency Kind = "consistency"
)

// Per pass confidence levels
const (
	spellingConfidence    = 0.95
	grammarConfidence     = 0.85
	abbrevConfidence      = 0.75
	consistencyConfidence = 0.70

	// terminologyFloor gates knowledge base hits for full terms
	terminologyFloor = 0.7

	// short unknown uppercase tokens fall through to the knowledge base
	abbrevLookupMaxLen = 6
)

// Match is a knowledge base lookup result
type Match struct {
	Term       string
	Suggestion string
	Source     string
	Category   string
	Definition string
	Context    string
	Confidence float64
}

// Lookup resolves a token against the medical knowledge base.
// Implementations must be safe for concurrent use
type Lookup interface {
	Best(ctx context.Context, term string) (Match, bool, error)
}

// Candidate is one correctable span found in the text.
// Start and End are byte offsets, End exclusive
type Candidate struct {
	Kind       Kind
	Start      int
	End        int
	Original   string
	Suggestion string
	Confidence float64
	Subtype    string
	Source     string
	Category   string
	Definition string
	Context    string
	RAG        bool
}

// Detector holds the compiled lexicon and the optional knowledge base seam
type Detector struct {
	pack *lexicon.Pack
	kb   Lookup

	wordRe   *regexp.Regexp
	abbrevRe *regexp.Regexp
}

// New builds a Detector around a compiled lexicon.
// kb may be nil, in which case the knowledge base passes are skipped
func New(pack *lexicon.Pack, kb Lookup) *Detector {
	if pack == nil {
		panic("detector: nil lexicon pack")
	}
	return &Detector{
		pack:     pack,
		kb:       kb,
		wordRe:   regexp.MustCompile(`\b\w+\b`),
		abbrevRe: regexp.MustCompile(`\b[A-Z]{2,}\b`),
	}
}

// Detect runs all passes over text and returns candidates in pass order.
// Knowledge base failures skip the affected token rather than failing the scan
func (d *Detector) Detect(ctx context.Context, text string) []Candidate {
	var out []Candidate
	out = append(out, d.spellingPass(text)...)
	out = append(out, d.grammarPass(text)...)
	out = append(out, d.terminologyPass(ctx, text)...)
	out = append(out, d.abbreviationPass(ctx, text)...)
	out = append(out, d.consistencyPass(text)...)
	return out
}

func (d *Detector) spellingPass(text string) []Candidate {
	var out []Candidate
	for _, span := range d.wordRe.FindAllStringIndex(text, -1) {
		token := text[span[0]:span[1]]
		fix, ok := d.pack.Dictionary[strings.ToLower(token)]
		if !ok {
			continue
		}
		out = append(out, Candidate{
			Kind:       KindSpelling,
			Start:      span[0],
			End:        span[1],
			Original:   token,
			Suggestion: StyleLike(token, fix),
			Confidence: spellingConfidence,
			Source:     "Medical Dictionary",
		})
	}
	return out
}

func (d *Detector) grammarPass(text string) []Candidate {
	var out []Candidate
	for i, re := range d.pack.Compiled {
		rule := d.pack.Grammar[i]
		for _, span := range re.FindAllStringIndex(text, -1) {
			out = append(out, Candidate{
				Kind:       KindGrammar,
				Start:      span[0],
				End:        span[1],
				Original:   text[span[0]:span[1]],
				Confidence: grammarConfidence,
				Subtype:    rule.Subtype,
			})
		}
	}
	return out
}

func (d *Detector) terminologyPass(ctx context.Context, text string) []Candidate {
	if d.kb == nil {
		return nil
	}
	var out []Candidate
	for _, span := range d.wordRe.FindAllStringIndex(text, -1) {
		token := text[span[0]:span[1]]
		lower := strings.ToLower(token)
		if len(lower) < 3 {
			continue
		}
		if _, stop := d.pack.Stopset[lower]; stop {
			continue
		}
		// dictionary misspellings are handled by the spelling pass and
		// known good vocabulary needs no lookup
		if _, hit := d.pack.Dictionary[lower]; hit {
			continue
		}
		if _, known := d.pack.Vocabulary[lower]; known {
			continue
		}
		m, ok, err := d.kb.Best(ctx, lower)
		if err != nil || !ok {
			continue
		}
		if m.Confidence <= terminologyFloor || strings.EqualFold(m.Suggestion, token) {
			continue
		}
		out = append(out, Candidate{
			Kind:       KindTerminology,
			Start:      span[0],
			End:        span[1],
			Original:   token,
			Suggestion: StyleLike(token, m.Suggestion),
			Confidence: m.Confidence,
			Subtype:    "knowledge_base_correction",
			Source:     m.Source,
			Category:   m.Category,
			Definition: m.Definition,
			Context:    m.Context,
			RAG:        true,
		})
	}
	return out
}

func (d *Detector) abbreviationPass(ctx context.Context, text string) []Candidate {
	var out []Candidate
	for _, span := range d.abbrevRe.FindAllStringIndex(text, -1) {
		token := text[span[0]:span[1]]
		if _, known := d.pack.Abbreviations[token]; known {
			continue
		}

		// closest key above the strong threshold wins; ties keep the
		// first key in sorted order
		best := ""
		bestScore := similarity.Strong
		for _, abbr := range d.pack.AbbrevKeys {
			if s := similarity.Score(token, abbr); s > bestScore {
				best, bestScore = abbr, s
			}
		}
		if best != "" {
			out = append(out, Candidate{
				Kind:       KindTerminology,
				Start:      span[0],
				End:        span[1],
				Original:   token,
				Suggestion: best,
				Confidence: abbrevConfidence,
				Subtype:    "abbreviation_correction",
				Source:     "Medical Abbreviations",
				Definition: d.pack.Abbreviations[best],
			})
			continue
		}
		if d.kb == nil || len(token) >= abbrevLookupMaxLen {
			continue
		}

		m, ok, err := d.kb.Best(ctx, strings.ToLower(token))
		if err != nil || !ok {
			continue
		}
		if m.Confidence <= similarity.Weak || strings.EqualFold(m.Suggestion, token) {
			continue
		}
		out = append(out, Candidate{
			Kind:       KindTerminology,
			Start:      span[0],
			End:        span[1],
			Original:   token,
			Suggestion: StyleLike(token, m.Suggestion),
			Confidence: m.Confidence,
			Subtype:    "rag_abbreviation",
			Source:     m.Source,
			Category:   m.Category,
			Definition: m.Definition,
			Context:    m.Context,
			RAG:        true,
		})
	}
	return out
}

// consistencyPass flags present tense markers when the report has mixed
// tense. The earliest marker in the text sets the baseline: if the first
// marker seen is present tense that occurrence is kept, everything else
// in present tense is flagged for rewrite to past
func (d *Detector) consistencyPass(text string) []Candidate {
	past := d.pack.PastRe.FindAllStringIndex(text, -1)
	present := d.pack.PresentRe.FindAllStringIndex(text, -1)
	if len(past) == 0 || len(present) == 0 {
		return nil
	}

	earliest := past[0][0]
	if present[0][0] < earliest {
		earliest = present[0][0]
	}

	var out []Candidate
	for _, span := range present {
		if span[0] == earliest {
			continue
		}
		out = append(out, Candidate{
			Kind:       KindConsistency,
			Start:      span[0],
			End:        span[1],
			Original:   text[span[0]:span[1]],
			Confidence: consistencyConfidence,
			Subtype:    "tense_consistency",
		})
	}
	return out
}
