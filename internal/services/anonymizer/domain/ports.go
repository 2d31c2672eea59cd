package domain

import "context"

// ServicePort defines the service contract for anonymization
type ServicePort interface {
	Analyze(ctx context.Context, in TextInput) (AnalyzeResult, error)
	Anonymize(ctx context.Context, in TextInput) (AnonymizeResult, error)
	Insights(ctx context.Context, in TextInput) (Insights, error)
	Audit(ctx context.Context, limit int) (AuditList, error)
}
