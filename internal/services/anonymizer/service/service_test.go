package service

import (
	"context"
	"testing"

	perr "medixscan/internal/platform/errors"
	pnet "medixscan/internal/platform/net"
	"medixscan/internal/services/anonymizer/domain"
	"medixscan/internal/services/anonymizer/repo"
)

func TestAnalyze(t *testing.T) {
	s := New(repo.NewMemory(10))

	got, err := s.Analyze(context.Background(), domain.TextInput{Text: "Patient: John Smith, SSN 123-45-6789"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got.TotalDetections != 2 {
		t.Fatalf("got %d detections: %+v", got.TotalDetections, got.Detections)
	}
	if got.Summary["name"] != 1 || got.Summary["identifier"] != 1 {
		t.Fatalf("summary = %+v", got.Summary)
	}
	if got.RiskLevel != "LOW" || got.ComplianceScore != 80 {
		t.Fatalf("risk=%s score=%d", got.RiskLevel, got.ComplianceScore)
	}
	if len(got.Recommendations) == 0 {
		t.Fatal("expected a HIPAA recommendation for detected names")
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	s := New(repo.NewMemory(10))

	_, err := s.Analyze(context.Background(), domain.TextInput{Text: "  "})
	if !perr.IsCode(err, perr.ErrorCodeEmptyInput) {
		t.Fatalf("err = %v, want empty input code", err)
	}
}

func TestAnonymize_RecordsAudit(t *testing.T) {
	mem := repo.NewMemory(10)
	s := New(mem)

	ctx := pnet.WithRequester(context.Background(), "dr.jones")
	got, err := s.Anonymize(ctx, domain.TextInput{Text: "Patient: John Smith, SSN 123-45-6789"})
	if err != nil {
		t.Fatalf("anonymize: %v", err)
	}
	want := "Patient: [PATIENT NAME], SSN [ID REMOVED]"
	if got.AnonymizedText != want {
		t.Fatalf("got %q, want %q", got.AnonymizedText, want)
	}

	recs, err := mem.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d audit records, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Requester != "dr.jones" || rec.Action != "anonymize" || rec.Detections != 2 {
		t.Fatalf("got %+v", rec)
	}
	if rec.ID != got.AuditID {
		t.Fatalf("audit id mismatch: %s vs %s", rec.ID, got.AuditID)
	}
}

func TestAnonymize_DefaultRequester(t *testing.T) {
	mem := repo.NewMemory(10)
	s := New(mem)

	if _, err := s.Anonymize(context.Background(), domain.TextInput{Text: "Patient: John Smith"}); err != nil {
		t.Fatalf("anonymize: %v", err)
	}
	recs, _ := mem.Recent(context.Background(), 1)
	if len(recs) != 1 || recs[0].Requester != "anonymous" {
		t.Fatalf("got %+v", recs)
	}
}

func TestAudit_NewestFirstAndCapped(t *testing.T) {
	mem := repo.NewMemory(300)
	s := New(mem)

	for i := 0; i < 150; i++ {
		if _, err := s.Anonymize(context.Background(), domain.TextInput{Text: "Patient: John Smith"}); err != nil {
			t.Fatalf("anonymize: %v", err)
		}
	}

	got, err := s.Audit(context.Background(), 0)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if got.Count != 100 {
		t.Fatalf("count = %d, want 100", got.Count)
	}

	small, err := s.Audit(context.Background(), 5)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if small.Count != 5 {
		t.Fatalf("count = %d, want 5", small.Count)
	}
}

func TestInsights(t *testing.T) {
	s := New(repo.NewMemory(10))

	got, err := s.Insights(context.Background(), domain.TextInput{Text: "Patient: John Smith\nSSN 123-45-6789"})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if got.TextStatistics.LineCount != 2 {
		t.Fatalf("lines = %d", got.TextStatistics.LineCount)
	}
	if got.TextStatistics.WordCount != 5 {
		t.Fatalf("words = %d", got.TextStatistics.WordCount)
	}
	if got.ComplianceAssessment.HIPAA.Issues != 2 {
		t.Fatalf("issues = %d", got.ComplianceAssessment.HIPAA.Issues)
	}
	if got.ComplianceAssessment.HIPAA.Score != 70 {
		t.Fatalf("score = %d", got.ComplianceAssessment.HIPAA.Score)
	}
}
