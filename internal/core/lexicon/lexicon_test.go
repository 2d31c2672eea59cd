package lexicon

import "testing"

func mustLoad(t *testing.T) *Pack {
	t.Helper()
	p, err := Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return p
}

func TestLoad_Dictionary(t *testing.T) {
	p := mustLoad(t)

	if got := p.Dictionary["diaphram"]; got != "diaphragm" {
		t.Fatalf("diaphram -> %q, want diaphragm", got)
	}
	if got := p.Dictionary["pnuemonia"]; got != "pneumonia" {
		t.Fatalf("pnuemonia -> %q, want pneumonia", got)
	}

	// identity mappings must never survive loading
	for miss, fix := range p.Dictionary {
		if miss == fix {
			t.Fatalf("identity dictionary entry %q", miss)
		}
	}
}

func TestLoad_GrammarCompiled(t *testing.T) {
	p := mustLoad(t)

	if len(p.Grammar) == 0 {
		t.Fatal("no grammar rules loaded")
	}
	if len(p.Grammar) != len(p.Compiled) {
		t.Fatalf("grammar/compiled mismatch: %d vs %d", len(p.Grammar), len(p.Compiled))
	}
	for i, g := range p.Grammar {
		if g.Subtype == "" {
			t.Fatalf("rule %d has empty subtype", i)
		}
	}
}

func TestRecommendation(t *testing.T) {
	p := mustLoad(t)

	if got := p.Recommendation("article_before_vowel"); got != "Article correction" {
		t.Fatalf("got %q", got)
	}
	if got := p.Recommendation("nope"); got != "Grammar correction" {
		t.Fatalf("fallback got %q", got)
	}
}

func TestLoad_TenseMarkers(t *testing.T) {
	p := mustLoad(t)

	if !p.PastRe.MatchString("The scan was performed") {
		t.Fatal("past marker not matched")
	}
	if p.PastRe.MatchString("the wasp flew") {
		t.Fatal("past marker matched inside a word")
	}
	if !p.PresentRe.MatchString("The lung Is clear") {
		t.Fatal("present marker should match case insensitively")
	}
	if got := p.VerbMap["shows"]; got != "showed" {
		t.Fatalf("shows -> %q, want showed", got)
	}
}

func TestLoad_StopwordsAndAbbreviations(t *testing.T) {
	p := mustLoad(t)

	if _, ok := p.Stopset["the"]; !ok {
		t.Fatal("stopset missing 'the'")
	}
	if got := p.Abbreviations["CT"]; got != "computed tomography" {
		t.Fatalf("CT -> %q", got)
	}
	if len(p.AbbrevKeys) != len(p.Abbreviations) {
		t.Fatalf("abbrev keys %d vs map %d", len(p.AbbrevKeys), len(p.Abbreviations))
	}
}
