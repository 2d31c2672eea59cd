// Package domain holds DTOs and ports for anonymization
package domain

import (
	"time"

	"github.com/google/uuid"

	"medixscan/internal/core/pii"
)

// TextInput is the input for the analyze, anonymize and insights endpoints
type TextInput struct {
	Text string `json:"text" validate:"omitempty,max=100000" example:"Patient: John Smith, SSN 123-45-6789"`
}

// AnalyzeResult reports detected PII without altering the text
type AnalyzeResult struct {
	Detections      []pii.Detection      `json:"detections"`
	Summary         map[string]int       `json:"summary"`
	TotalDetections int                  `json:"total_detections"`
	RiskLevel       string               `json:"risk_level"`
	ComplianceScore int                  `json:"compliance_score"`
	Recommendations []pii.Recommendation `json:"recommendations"`
}

// AnonymizeResult carries the redacted text and the audit id recorded for it
type AnonymizeResult struct {
	AnonymizedText  string         `json:"anonymized_text"`
	Summary         map[string]int `json:"summary"`
	TotalDetections int            `json:"total_detections"`
	RiskLevel       string         `json:"risk_level"`
	ComplianceScore int            `json:"compliance_score"`
	AuditID         uuid.UUID      `json:"audit_id"`
}

// TextStats are basic shape metrics for a report
type TextStats struct {
	CharacterCount int `json:"character_count"`
	WordCount      int `json:"word_count"`
	LineCount      int `json:"line_count"`
}

// HIPAAAssessment scores a report against identifier exposure
type HIPAAAssessment struct {
	Score  int `json:"score"`
	Issues int `json:"issues"`
}

// ComplianceAssessment groups per framework assessments
type ComplianceAssessment struct {
	HIPAA HIPAAAssessment `json:"hipaa"`
}

// Insights is the combined sensitivity report for a text
type Insights struct {
	TextStatistics       TextStats            `json:"text_statistics"`
	SensitivityAnalysis  AnalyzeResult        `json:"sensitivity_analysis"`
	ComplianceAssessment ComplianceAssessment `json:"compliance_assessment"`
	Recommendations      []pii.Recommendation `json:"recommendations"`
}

// AuditRecord is one append only audit trail entry
type AuditRecord struct {
	ID              uuid.UUID      `json:"id"`
	Requester       string         `json:"requester"`
	Action          string         `json:"action"`
	Detections      int            `json:"detections"`
	Summary         map[string]int `json:"summary"`
	RiskLevel       string         `json:"risk_level"`
	ComplianceScore int            `json:"compliance_score"`
	CreatedAt       time.Time      `json:"created_at"`
}

// AuditList is the response for the audit endpoint
type AuditList struct {
	Records []AuditRecord `json:"records"`
	Count   int           `json:"count"`
}
