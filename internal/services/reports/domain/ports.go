package domain

import (
	"context"

	"medixscan/internal/core/corrector"
)

// ServicePort defines the service contract for report analysis
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (Analysis, error)
}

// EnhancerPort reviews rule based corrections with an external model.
// Implementations return the revised record set or an error; callers
// treat any failure as advisory and keep the rule based records
type EnhancerPort interface {
	Available() bool
	Enhance(ctx context.Context, text string, recs []corrector.Record) ([]corrector.Record, error)
}
