// Package lexicon loads and compiles the embedded medical lexicon.json.
// It prepares the misspelling dictionary, grammar rules, abbreviation table
// and tense marker sets for the detector and corrector
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed lexicon.json
var embedded []byte

type rawGrammarRule struct {
	ID             string `json:"id"`
	Subtype        string `json:"subtype"`
	Pattern        string `json:"pattern"`
	Recommendation string `json:"recommendation"`
}

type rawTenseBlock struct {
	Past    []string          `json:"past"`
	Present []string          `json:"present"`
	VerbMap map[string]string `json:"verb_map"`
}

type rawLexicon struct {
	Version       int               `json:"version"`
	Dictionary    map[string]string `json:"dictionary"`
	Vocabulary    []string          `json:"vocabulary"`
	Grammar       []rawGrammarRule  `json:"grammar"`
	Abbreviations map[string]string `json:"abbreviations"`
	Stopwords     []string          `json:"stopwords"`
	Tense         rawTenseBlock     `json:"tense"`
}

// GrammarRule is a compiled grammar rule with its metadata
type GrammarRule struct {
	ID             string
	Subtype        string
	Recommendation string
}

// Pack represents the compiled lexicon
type Pack struct {
	Version int

	// Dictionary maps lowercased misspellings to their canonical spelling
	Dictionary map[string]string

	// Vocabulary holds lowercased terms known to be spelled correctly;
	// the detector skips knowledge base lookups for these
	Vocabulary map[string]struct{}

	// Grammar rules, 1:1 with Compiled
	Grammar  []GrammarRule
	Compiled []*regexp.Regexp

	// Abbreviations maps uppercase imaging abbreviations to expansions.
	// AbbrevKeys is the sorted key list for deterministic scans
	Abbreviations map[string]string
	AbbrevKeys    []string

	// Stopset suppresses knowledge base lookups for common words
	Stopset map[string]struct{}

	// Tense markers and the past tense rewrite map
	PastMarkers    []string
	PresentMarkers []string
	VerbMap        map[string]string

	// Compiled marker scans, built from the marker lists
	PastRe    *regexp.Regexp
	PresentRe *regexp.Regexp
}

// Load returns the compiled pack from the embedded lexicon.json
func Load() (*Pack, error) {
	var rl rawLexicon
	if err := json.Unmarshal(embedded, &rl); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if rl.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported lexicon.json version %d (want 1)", rl.Version)
	}

	p := &Pack{
		Version:        rl.Version,
		Dictionary:     make(map[string]string, len(rl.Dictionary)),
		Vocabulary:     make(map[string]struct{}, len(rl.Vocabulary)),
		Abbreviations:  make(map[string]string, len(rl.Abbreviations)),
		Stopset:        make(map[string]struct{}, len(rl.Stopwords)),
		PastMarkers:    rl.Tense.Past,
		PresentMarkers: rl.Tense.Present,
		VerbMap:        make(map[string]string, len(rl.Tense.VerbMap)),
	}

	for miss, fix := range rl.Dictionary {
		miss = strings.ToLower(strings.TrimSpace(miss))
		fix = strings.ToLower(strings.TrimSpace(fix))
		if miss == "" || fix == "" || miss == fix {
			continue
		}
		p.Dictionary[miss] = fix
	}

	for _, w := range rl.Vocabulary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			p.Vocabulary[w] = struct{}{}
		}
	}

	for _, g := range rl.Grammar {
		re, err := regexp.Compile(g.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lexicon: compile grammar rule %q: %w", g.ID, err)
		}
		p.Grammar = append(p.Grammar, GrammarRule{
			ID:             g.ID,
			Subtype:        g.Subtype,
			Recommendation: g.Recommendation,
		})
		p.Compiled = append(p.Compiled, re)
	}

	for abbr, exp := range rl.Abbreviations {
		abbr = strings.ToUpper(strings.TrimSpace(abbr))
		if abbr == "" {
			continue
		}
		p.Abbreviations[abbr] = exp
		p.AbbrevKeys = append(p.AbbrevKeys, abbr)
	}
	sort.Strings(p.AbbrevKeys)

	for _, s := range rl.Stopwords {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			p.Stopset[s] = struct{}{}
		}
	}

	for from, to := range rl.Tense.VerbMap {
		from = strings.ToLower(strings.TrimSpace(from))
		to = strings.ToLower(strings.TrimSpace(to))
		if from != "" && to != "" {
			p.VerbMap[from] = to
		}
	}

	var err error
	if p.PastRe, err = markerRe(rl.Tense.Past); err != nil {
		return nil, fmt.Errorf("lexicon: compile past markers: %w", err)
	}
	if p.PresentRe, err = markerRe(rl.Tense.Present); err != nil {
		return nil, fmt.Errorf("lexicon: compile present markers: %w", err)
	}

	return p, nil
}

// Recommendation returns the recommendation string for a grammar subtype
func (p *Pack) Recommendation(subtype string) string {
	for _, g := range p.Grammar {
		if g.Subtype == subtype {
			return g.Recommendation
		}
	}
	return "Grammar correction"
}

func markerRe(words []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(w)))
		}
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("empty marker list")
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
