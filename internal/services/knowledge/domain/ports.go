package domain

import (
	"context"

	"medixscan/internal/core/detector"
)

// ServicePort defines the http facing contract for the knowledge base
type ServicePort interface {
	Lookup(ctx context.Context, in LookupInput) (LookupResult, error)
}

// RetrieverPort is the lookup seam consumed by the detection pipeline
type RetrieverPort interface {
	Retrieve(ctx context.Context, term string, limit int) ([]Retrieved, error)
	Best(ctx context.Context, term string) (detector.Match, bool, error)
}
