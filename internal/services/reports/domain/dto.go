// Package domain holds DTOs and ports for report analysis
package domain

import (
	"time"

	"medixscan/internal/core/corrector"
)

// AnalyzeInput is the input for report analysis
type AnalyzeInput struct {
	Text       string `json:"text" validate:"omitempty,max=100000" example:"The diaphram appears elevated."`
	ReportType string `json:"report_type,omitempty" validate:"omitempty,max=64" example:"chest_xray"`
}

// Summary aggregates the corrections of one analysis
type Summary struct {
	TotalErrors     int            `json:"total_errors"`
	ErrorsByType    map[string]int `json:"errors_by_type"`
	ConfidenceScore float64        `json:"confidence_score"`
}

// Metadata describes how the analysis was produced
type Metadata struct {
	TextLength       int       `json:"text_length"`
	WordCount        int       `json:"word_count"`
	ProcessedAt      time.Time `json:"processed_at"`
	AIEnhanced       bool      `json:"ai_enhanced"`
	ProcessingMethod string    `json:"processing_method"`
	RAGCorrections   int       `json:"rag_corrections"`
	KnowledgeSources []string  `json:"knowledge_sources,omitempty"`
}

// Analysis is the full result of analyzing one report
type Analysis struct {
	OriginalText  string             `json:"original_text"`
	CorrectedText string             `json:"corrected_text"`
	Corrections   []corrector.Record `json:"corrections"`
	Summary       Summary            `json:"summary"`
	Metadata      Metadata           `json:"metadata"`
}
