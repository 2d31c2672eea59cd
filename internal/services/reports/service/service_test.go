package service

import (
	"context"
	"errors"
	"testing"

	"medixscan/internal/core/corrector"
	"medixscan/internal/core/detector"
	"medixscan/internal/core/lexicon"
	perr "medixscan/internal/platform/errors"
	"medixscan/internal/services/reports/domain"
)

func mustSvc(t *testing.T, opts ...Option) *Svc {
	t.Helper()
	pack, err := lexicon.Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return New(detector.New(pack, nil), corrector.New(pack), opts...)
}

type fakeEnhancer struct {
	recs []corrector.Record
	err  error
}

func (fakeEnhancer) Available() bool { return true }

func (f fakeEnhancer) Enhance(context.Context, string, []corrector.Record) ([]corrector.Record, error) {
	return f.recs, f.err
}

func TestAnalyze_EmptyInput(t *testing.T) {
	s := mustSvc(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: text})
		if !perr.IsCode(err, perr.ErrorCodeEmptyInput) {
			t.Fatalf("text %q: err = %v, want empty input code", text, err)
		}
	}
}

func TestAnalyze_Spelling(t *testing.T) {
	s := mustSvc(t)

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: "The diaphram appears elevated."})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.CorrectedText != "The diaphragm appears elevated." {
		t.Fatalf("corrected = %q", got.CorrectedText)
	}
	if len(got.Corrections) != 1 {
		t.Fatalf("got %d corrections: %+v", len(got.Corrections), got.Corrections)
	}
	c := got.Corrections[0]
	if c.Error != "diaphram" || c.Suggestion != "diaphragm" || c.Position != [2]int{4, 12} {
		t.Fatalf("got %+v", c)
	}
	if got.Summary.TotalErrors != 1 || got.Summary.ErrorsByType["spelling"] != 1 {
		t.Fatalf("summary = %+v", got.Summary)
	}
	if got.Summary.ConfidenceScore != 0.83 {
		t.Fatalf("confidence = %v", got.Summary.ConfidenceScore)
	}
	if got.Metadata.AIEnhanced || got.Metadata.ProcessingMethod != "rule_based" {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
}

func TestAnalyze_TenseRewrite(t *testing.T) {
	s := mustSvc(t)

	in := "The scan was performed. The lung is clear. The heart is normal."
	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: in})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := "The scan was performed. The lung was clear. The heart was normal."
	if got.CorrectedText != want {
		t.Fatalf("corrected = %q, want %q", got.CorrectedText, want)
	}
	if got.Summary.ErrorsByType["consistency"] != 2 {
		t.Fatalf("summary = %+v", got.Summary)
	}
}

func TestAnalyze_CleanText(t *testing.T) {
	s := mustSvc(t)

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: "No acute abnormality."})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(got.Corrections) != 0 || got.CorrectedText != "No acute abnormality." {
		t.Fatalf("got %+v", got)
	}
	if got.Summary.ConfidenceScore != 1.0 {
		t.Fatalf("confidence = %v", got.Summary.ConfidenceScore)
	}
}

func TestAnalyze_EnhancerFailSoft(t *testing.T) {
	s := mustSvc(t, WithEnhancer(fakeEnhancer{err: errors.New("model down")}))

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: "The diaphram appears elevated."})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Metadata.AIEnhanced || got.Metadata.ProcessingMethod != "rule_based" {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
	if got.CorrectedText != "The diaphragm appears elevated." {
		t.Fatalf("rule based corrections lost: %q", got.CorrectedText)
	}
}

func TestAnalyze_EnhancerApplied(t *testing.T) {
	revised := []corrector.Record{{
		Error:      "diaphram",
		Suggestion: "diaphragm",
		Position:   [2]int{4, 12},
		Type:       "spelling",
		Confidence: 0.99,
	}}
	s := mustSvc(t, WithEnhancer(fakeEnhancer{recs: revised}))

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: "The diaphram appears elevated."})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !got.Metadata.AIEnhanced || got.Metadata.ProcessingMethod != "hybrid" {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
	if got.Corrections[0].Confidence != 0.99 {
		t.Fatalf("revised records not used: %+v", got.Corrections)
	}
}

func TestAnalyze_RAGMetadata(t *testing.T) {
	pack, err := lexicon.Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	kb := stubKB{matches: map[string]detector.Match{
		"opacty": {Suggestion: "opacity", Source: "RadLex", Definition: "increased attenuation", Confidence: 0.9},
	}}
	s := New(detector.New(pack, kb), corrector.New(pack))

	got, err := s.Analyze(context.Background(), domain.AnalyzeInput{Text: "Rounded opacty noted"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.Metadata.RAGCorrections != 1 {
		t.Fatalf("metadata = %+v", got.Metadata)
	}
	if len(got.Metadata.KnowledgeSources) != 1 || got.Metadata.KnowledgeSources[0] != "RadLex" {
		t.Fatalf("sources = %+v", got.Metadata.KnowledgeSources)
	}
}

type stubKB struct{ matches map[string]detector.Match }

func (s stubKB) Best(_ context.Context, term string) (detector.Match, bool, error) {
	m, ok := s.matches[term]
	return m, ok, nil
}
