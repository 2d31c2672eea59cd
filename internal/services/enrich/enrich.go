// Package enrich provides EnhancerPort implementations for the report
// pipeline. The OpenAI client reviews rule based corrections against the
// full report; Noop keeps the pipeline purely rule based
package enrich

import (
	"context"

	"medixscan/internal/core/corrector"
	"medixscan/internal/platform/config"
	"medixscan/internal/services/reports/domain"
)

// Noop is the disabled enhancer
type Noop struct{}

// Available always reports false
func (Noop) Available() bool { return false }

// Enhance returns the records unchanged
func (Noop) Enhance(_ context.Context, _ string, recs []corrector.Record) ([]corrector.Record, error) {
	return recs, nil
}

// FromConfig builds an enhancer from AI_* keys. Without an API key the
// pipeline stays rule based
func FromConfig(cfg config.Conf) domain.EnhancerPort {
	key := cfg.MayString("OPENAI_API_KEY", "")
	if key == "" {
		return Noop{}
	}
	return NewOpenAI(
		key,
		WithModel(cfg.MayString("OPENAI_MODEL", defaultModel)),
		WithBaseURL(cfg.MayString("OPENAI_BASE_URL", defaultBaseURL)),
	)
}
