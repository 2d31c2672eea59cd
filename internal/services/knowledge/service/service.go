// Package service contains the tiered knowledge base retriever.
// Lookups resolve in order: exact term or synonym match, fuzzy edit
// distance match, then a semantic tier reserved for embedding search.
// Results are cached for an hour per term and limit
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"medixscan/internal/core/detector"
	"medixscan/internal/core/similarity"
	perr "medixscan/internal/platform/errors"
	"medixscan/internal/services/knowledge/domain"
)

// Service defines the service contract for the knowledge base
type Service interface {
	domain.ServicePort
	domain.RetrieverPort
}

const (
	defaultLimit = 5
	maxLimit     = 25

	cacheTTL     = time.Hour
	cacheCleanup = 10 * time.Minute
)

// Svc implements the Service interface over an in memory corpus
type Svc struct {
	terms []domain.Term
	cache *gocache.Cache
}

// New creates a knowledge base service over the given corpus
func New(terms []domain.Term) *Svc {
	if len(terms) == 0 {
		panic("knowledge.Service requires a non empty corpus")
	}
	return &Svc{
		terms: terms,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

// Lookup resolves a lookup request for the http surface
func (s *Svc) Lookup(ctx context.Context, in domain.LookupInput) (domain.LookupResult, error) {
	results, err := s.Retrieve(ctx, in.Term, in.Limit)
	if err != nil {
		return domain.LookupResult{}, err
	}
	return domain.LookupResult{
		Term:    strings.ToLower(strings.TrimSpace(in.Term)),
		Results: results,
		Count:   len(results),
	}, nil
}

// Retrieve runs the tiered lookup for a single term
func (s *Svc) Retrieve(_ context.Context, term string, limit int) ([]domain.Retrieved, error) {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" {
		return nil, perr.EmptyInputf("lookup term is required")
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := fmt.Sprintf("%s|%d", key, limit)
	if hit, ok := s.cache.Get(cacheKey); ok {
		return hit.([]domain.Retrieved), nil
	}

	results := s.exact(key, limit)
	if len(results) == 0 {
		results = s.fuzzy(key, limit)
	}
	if len(results) == 0 {
		results = s.semantic(key, limit)
	}

	s.cache.Set(cacheKey, results, gocache.DefaultExpiration)
	return results, nil
}

// Best adapts the retriever to the detector lookup seam
func (s *Svc) Best(ctx context.Context, term string) (detector.Match, bool, error) {
	results, err := s.Retrieve(ctx, term, 1)
	if err != nil || len(results) == 0 {
		return detector.Match{}, false, err
	}
	r := results[0]
	return detector.Match{
		Term:       r.Term.Term,
		Suggestion: r.CorrectSpelling,
		Source:     r.Source,
		Category:   r.Category,
		Definition: r.Definition,
		Context:    r.Context,
		Confidence: r.Confidence,
	}, true, nil
}

func (s *Svc) exact(key string, limit int) []domain.Retrieved {
	var out []domain.Retrieved
	for _, t := range s.terms {
		if !matchesExact(t, key) {
			continue
		}
		out = append(out, domain.Retrieved{
			Term:       t,
			Confidence: 1.0,
			MatchType:  "exact",
			Context:    fmt.Sprintf("Exact match found in %s database", t.Source),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Svc) fuzzy(key string, limit int) []domain.Retrieved {
	var out []domain.Retrieved
	for _, t := range s.terms {
		score := similarity.Score(key, t.Term)
		for _, syn := range t.Synonyms {
			if v := similarity.Score(key, syn); v > score {
				score = v
			}
		}
		if score < similarity.Weak {
			continue
		}
		out = append(out, domain.Retrieved{
			Term:       t,
			Confidence: score,
			MatchType:  "fuzzy",
			Context:    fmt.Sprintf("Fuzzy match (%d%% similar) in %s database", int(score*100), t.Source),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// semantic is the embedding search tier. No vector index is wired yet so
// it always comes back empty
func (s *Svc) semantic(string, int) []domain.Retrieved {
	return nil
}

func matchesExact(t domain.Term, key string) bool {
	if t.Term == key {
		return true
	}
	for _, syn := range t.Synonyms {
		if syn == key {
			return true
		}
	}
	return false
}
