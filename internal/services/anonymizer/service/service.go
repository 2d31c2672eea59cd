// Package service contains the anonymization workflows. Every anonymize
// call appends to the audit trail; audit failures are logged and never
// fail the request
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"medixscan/internal/core/pii"
	perr "medixscan/internal/platform/errors"
	"medixscan/internal/platform/logger"
	pnet "medixscan/internal/platform/net"
	"medixscan/internal/services/anonymizer/domain"
	"medixscan/internal/services/anonymizer/repo"
)

// Service defines the service contract for anonymization
type Service interface{ domain.ServicePort }

const (
	maxAuditLimit     = 100
	defaultRequester  = "anonymous"
	hipaaIssuePenalty = 15
)

// Svc implements the Service interface
type Svc struct {
	audit repo.Repo
	log   *logger.Logger
}

// New creates a new anonymization service over the given audit trail
func New(audit repo.Repo) *Svc {
	if audit == nil {
		panic("anonymizer.Service requires an audit repo")
	}
	return &Svc{audit: audit, log: logger.Named("anonymizer")}
}

// Analyze reports detected PII without altering the text
func (s *Svc) Analyze(_ context.Context, in domain.TextInput) (domain.AnalyzeResult, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.AnalyzeResult{}, perr.EmptyInputf("text is required")
	}
	return analyze(in.Text), nil
}

// Anonymize redacts detected PII and records the action in the audit trail
func (s *Svc) Anonymize(ctx context.Context, in domain.TextInput) (domain.AnonymizeResult, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.AnonymizeResult{}, perr.EmptyInputf("text is required")
	}

	detections := pii.Detect(in.Text)
	summary := pii.Summarize(detections)

	rec := domain.AuditRecord{
		ID:              uuid.New(),
		Requester:       requester(ctx),
		Action:          "anonymize",
		Detections:      len(detections),
		Summary:         summary,
		RiskLevel:       pii.RiskLevel(len(detections)),
		ComplianceScore: pii.ComplianceScore(len(detections)),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.audit.Insert(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("audit_id", rec.ID.String()).Msg("audit insert failed")
	}

	return domain.AnonymizeResult{
		AnonymizedText:  pii.Anonymize(in.Text, detections),
		Summary:         summary,
		TotalDetections: len(detections),
		RiskLevel:       rec.RiskLevel,
		ComplianceScore: rec.ComplianceScore,
		AuditID:         rec.ID,
	}, nil
}

// Insights combines text statistics, sensitivity analysis and compliance
// assessment for a report
func (s *Svc) Insights(_ context.Context, in domain.TextInput) (domain.Insights, error) {
	if strings.TrimSpace(in.Text) == "" {
		return domain.Insights{}, perr.EmptyInputf("text is required")
	}

	sens := analyze(in.Text)
	issues := 0
	for _, d := range sens.Detections {
		if d.Type == pii.TypeName || d.Type == pii.TypeIdentifier {
			issues++
		}
	}
	hipaaScore := 100 - hipaaIssuePenalty*issues
	if hipaaScore < 0 {
		hipaaScore = 0
	}

	return domain.Insights{
		TextStatistics: domain.TextStats{
			CharacterCount: utf8.RuneCountInString(in.Text),
			WordCount:      len(strings.Fields(in.Text)),
			LineCount:      strings.Count(in.Text, "\n") + 1,
		},
		SensitivityAnalysis: sens,
		ComplianceAssessment: domain.ComplianceAssessment{
			HIPAA: domain.HIPAAAssessment{Score: hipaaScore, Issues: issues},
		},
		Recommendations: sens.Recommendations,
	}, nil
}

// Audit returns the most recent audit records, capped at 100
func (s *Svc) Audit(ctx context.Context, limit int) (domain.AuditList, error) {
	if limit <= 0 || limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	recs, err := s.audit.Recent(ctx, limit)
	if err != nil {
		return domain.AuditList{}, perr.FromPostgres(err, "audit trail read")
	}
	return domain.AuditList{Records: recs, Count: len(recs)}, nil
}

func analyze(text string) domain.AnalyzeResult {
	detections := pii.Detect(text)
	return domain.AnalyzeResult{
		Detections:      detections,
		Summary:         pii.Summarize(detections),
		TotalDetections: len(detections),
		RiskLevel:       pii.RiskLevel(len(detections)),
		ComplianceScore: pii.ComplianceScore(len(detections)),
		Recommendations: pii.Recommendations(detections),
	}
}

func requester(ctx context.Context) string {
	if who := pnet.Requester(ctx); who != "" {
		return who
	}
	return defaultRequester
}
