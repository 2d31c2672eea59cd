// Package service contains the report analysis pipeline: detect
// candidates, generate correction records, optionally enhance them with
// an external model, then rewrite and score the text
package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"medixscan/internal/core/corrector"
	"medixscan/internal/core/detector"
	perr "medixscan/internal/platform/errors"
	"medixscan/internal/platform/logger"
	"medixscan/internal/services/reports/domain"
)

// Service defines the service contract for report analysis
type Service interface{ domain.ServicePort }

const defaultEnhanceTimeout = 30 * time.Second

// Svc implements the Service interface
type Svc struct {
	det      *detector.Detector
	cor      *corrector.Corrector
	enhancer domain.EnhancerPort
	timeout  time.Duration
	log      *logger.Logger
}

// Option customizes the service
type Option func(*Svc)

// WithEnhancer attaches an external correction reviewer
func WithEnhancer(e domain.EnhancerPort) Option {
	return func(s *Svc) { s.enhancer = e }
}

// WithEnhanceTimeout bounds a single enhancement call
func WithEnhanceTimeout(d time.Duration) Option {
	return func(s *Svc) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a new report analysis service
func New(det *detector.Detector, cor *corrector.Corrector, opts ...Option) *Svc {
	if det == nil || cor == nil {
		panic("reports.Service requires a detector and a corrector")
	}
	s := &Svc{
		det:     det,
		cor:     cor,
		timeout: defaultEnhanceTimeout,
		log:     logger.Named("reports"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analyze runs the full pipeline over one report
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Analysis, error) {
	text := in.Text
	if strings.TrimSpace(text) == "" {
		return domain.Analysis{}, perr.EmptyInputf("report text is required")
	}

	recs := make([]corrector.Record, 0, 8)
	for _, cand := range s.det.Detect(ctx, text) {
		if rec, ok := s.cor.Generate(cand); ok {
			recs = append(recs, rec)
		}
	}
	recs = corrector.Dedup(recs)

	enhanced := false
	method := "rule_based"
	if s.enhancer != nil && s.enhancer.Available() {
		ectx, cancel := context.WithTimeout(ctx, s.timeout)
		out, err := s.enhancer.Enhance(ectx, text, recs)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Msg("enhancement failed, keeping rule based corrections")
		} else {
			recs = corrector.Dedup(out)
			enhanced = true
			method = "hybrid"
		}
	}

	corrected := corrector.Apply(text, recs)

	byType := make(map[string]int, 4)
	ragCount := 0
	seen := make(map[string]struct{}, 2)
	var sources []string
	for _, r := range recs {
		byType[r.Type]++
		if r.RAG {
			ragCount++
		}
		if r.Source != "" {
			if _, dup := seen[r.Source]; !dup {
				seen[r.Source] = struct{}{}
				sources = append(sources, r.Source)
			}
		}
	}

	return domain.Analysis{
		OriginalText:  text,
		CorrectedText: corrected,
		Corrections:   recs,
		Summary: domain.Summary{
			TotalErrors:     len(recs),
			ErrorsByType:    byType,
			ConfidenceScore: corrector.Score(text, recs),
		},
		Metadata: domain.Metadata{
			TextLength:       utf8.RuneCountInString(text),
			WordCount:        len(strings.Fields(text)),
			ProcessedAt:      time.Now().UTC(),
			AIEnhanced:       enhanced,
			ProcessingMethod: method,
			RAGCorrections:   ragCount,
			KnowledgeSources: sources,
		},
	}, nil
}
