package repo

import (
	"context"
	"sync"

	"medixscan/internal/services/anonymizer/domain"
)

// Memory is a bounded in process audit trail used when postgres is
// disabled. Oldest records fall off once the capacity is reached
type Memory struct {
	mu   sync.Mutex
	cap  int
	recs []domain.AuditRecord
}

// NewMemory creates a memory backed audit trail holding up to capacity records
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 1000
	}
	return &Memory{cap: capacity}
}

// Insert appends a record, evicting the oldest when full
func (m *Memory) Insert(_ context.Context, rec domain.AuditRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	if len(m.recs) > m.cap {
		m.recs = m.recs[len(m.recs)-m.cap:]
	}
	return nil
}

// Recent returns up to limit records, newest first
func (m *Memory) Recent(_ context.Context, limit int) ([]domain.AuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.recs) {
		limit = len(m.recs)
	}
	out := make([]domain.AuditRecord, 0, limit)
	for i := len(m.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}
