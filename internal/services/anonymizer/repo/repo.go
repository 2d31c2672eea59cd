// Package repo provides audit trail storage for the anonymizer
package repo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"medixscan/internal/modkit/repokit"
	"medixscan/internal/services/anonymizer/domain"
)

// Repo defines the append only audit trail contract
type Repo interface {
	Insert(ctx context.Context, rec domain.AuditRecord) error
	Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, rec domain.AuditRecord) error {
	summary, err := json.Marshal(rec.Summary)
	if err != nil {
		return err
	}
	const sql = `
insert into anonymization_audit
(id, requester, action, detections, summary, risk_level, compliance_score, created_at)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = r.q.Exec(ctx, sql,
		rec.ID.String(),
		rec.Requester,
		rec.Action,
		rec.Detections,
		summary,
		rec.RiskLevel,
		rec.ComplianceScore,
		rec.CreatedAt,
	)
	return err
}

func (r *queries) Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	const sql = `
select id::text, requester, action, detections, summary, risk_level, compliance_score, created_at
from anonymization_audit
order by created_at desc
limit $1
`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var id string
		var summary []byte
		if err := rows.Scan(
			&id,
			&rec.Requester,
			&rec.Action,
			&rec.Detections,
			&summary,
			&rec.RiskLevel,
			&rec.ComplianceScore,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if len(summary) > 0 {
			if err := json.Unmarshal(summary, &rec.Summary); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
