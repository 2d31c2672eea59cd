package corrector

import (
	"testing"

	"medixscan/internal/core/detector"
	"medixscan/internal/core/lexicon"
)

func mustCorrector(t *testing.T) *Corrector {
	t.Helper()
	p, err := lexicon.Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return New(p)
}

func TestGenerate_Spelling(t *testing.T) {
	c := mustCorrector(t)

	rec, ok := c.Generate(detector.Candidate{
		Kind:       detector.KindSpelling,
		Start:      4,
		End:        12,
		Original:   "diaphram",
		Suggestion: "diaphragm",
		Confidence: 0.95,
	})
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Recommendation != "Spelling correction" {
		t.Fatalf("recommendation = %q", rec.Recommendation)
	}
	if rec.Position != [2]int{4, 12} || rec.Type != "spelling" {
		t.Fatalf("got %+v", rec)
	}
}

func TestGenerate_GrammarArticle(t *testing.T) {
	c := mustCorrector(t)

	rec, ok := c.Generate(detector.Candidate{
		Kind:       detector.KindGrammar,
		Original:   "a o",
		Subtype:    "article_before_vowel",
		Confidence: 0.85,
	})
	if !ok || rec.Suggestion != "an o" {
		t.Fatalf("got %+v ok=%v, want 'an o'", rec, ok)
	}
	if rec.Recommendation != "Article correction" {
		t.Fatalf("recommendation = %q", rec.Recommendation)
	}

	rec, ok = c.Generate(detector.Candidate{
		Kind:     detector.KindGrammar,
		Original: "An x",
		Subtype:  "article_before_consonant",
	})
	if !ok || rec.Suggestion != "A x" {
		t.Fatalf("got %q ok=%v, want 'A x'", rec.Suggestion, ok)
	}
}

func TestGenerate_GrammarTitle(t *testing.T) {
	c := mustCorrector(t)

	rec, ok := c.Generate(detector.Candidate{
		Kind:     detector.KindGrammar,
		Original: "dr s",
		Subtype:  "doctor_title_capitalization",
	})
	if !ok || rec.Suggestion != "Dr. S" {
		t.Fatalf("got %q ok=%v, want 'Dr. S'", rec.Suggestion, ok)
	}
}

func TestGenerate_TenseRuleDropped(t *testing.T) {
	c := mustCorrector(t)

	for _, subtype := range []string{"past_tense_consistency", "present_tense_consistency"} {
		if rec, ok := c.Generate(detector.Candidate{
			Kind:     detector.KindGrammar,
			Original: "was performed",
			Subtype:  subtype,
		}); ok {
			t.Fatalf("%s produced %+v, want drop", subtype, rec)
		}
	}
}

func TestGenerate_Consistency(t *testing.T) {
	c := mustCorrector(t)

	rec, ok := c.Generate(detector.Candidate{
		Kind:       detector.KindConsistency,
		Original:   "Is",
		Subtype:    "tense_consistency",
		Confidence: 0.70,
	})
	if !ok || rec.Suggestion != "Was" {
		t.Fatalf("got %q ok=%v, want Was", rec.Suggestion, ok)
	}
}

func TestApply_Basic(t *testing.T) {
	text := "The diaphram appears elevated."
	recs := []Record{{
		Error:      "diaphram",
		Suggestion: "diaphragm",
		Position:   [2]int{4, 12},
	}}

	got := Apply(text, recs)
	want := "The diaphragm appears elevated."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	// stale records are skipped, so re-applying is a no-op
	if again := Apply(got, recs); again != want {
		t.Fatalf("reapply changed text: %q", again)
	}
}

func TestApply_Capitalization(t *testing.T) {
	recs := []Record{{Error: "diaphram", Suggestion: "diaphragm", Position: [2]int{0, 8}}}

	if got := Apply("DIAPHRAM elevated", recs); got != "DIAPHRAGM elevated" {
		t.Fatalf("got %q", got)
	}
	if got := Apply("Diaphram elevated", recs); got != "Diaphragm elevated" {
		t.Fatalf("got %q", got)
	}
}

func TestApply_MultipleRightToLeft(t *testing.T) {
	text := "The pateint has pnuemonia."
	recs := []Record{
		{Error: "pateint", Suggestion: "patient", Position: [2]int{4, 11}},
		{Error: "pnuemonia", Suggestion: "pneumonia", Position: [2]int{16, 25}},
	}
	want := "The patient has pneumonia."
	if got := Apply(text, recs); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestApply_StaleSpanSkipped(t *testing.T) {
	text := "The diaphram appears elevated."
	recs := []Record{{Error: "effuson", Suggestion: "effusion", Position: [2]int{4, 12}}}

	if got := Apply(text, recs); got != text {
		t.Fatalf("stale record applied: %q", got)
	}
}

func TestDedup_OverlapKeepsHigherConfidence(t *testing.T) {
	recs := []Record{
		{Error: "a", Position: [2]int{10, 14}, Confidence: 0.70},
		{Error: "b", Position: [2]int{10, 14}, Confidence: 0.95},
		{Error: "c", Position: [2]int{20, 24}, Confidence: 0.85},
	}
	got := Dedup(recs)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(got), got)
	}
	if got[0].Error != "b" || got[1].Error != "c" {
		t.Fatalf("got %+v", got)
	}
}

func TestScore(t *testing.T) {
	if got := Score("all clear", nil); got != 1.0 {
		t.Fatalf("clean score = %v, want 1.0", got)
	}

	recs := []Record{{Confidence: 0.95}}
	if got := Score("The diaphram appears elevated", recs); got != 0.83 {
		t.Fatalf("score = %v, want 0.83", got)
	}

	// density penalty caps at 0.3 and the score floors at 0.1
	low := []Record{{Confidence: 0.2}, {Confidence: 0.2}, {Confidence: 0.2}, {Confidence: 0.2}}
	if got := Score("two words", low); got != 0.1 {
		t.Fatalf("floored score = %v, want 0.1", got)
	}
}
