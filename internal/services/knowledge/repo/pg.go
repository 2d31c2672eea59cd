package repo

import (
	"context"

	"medixscan/internal/modkit/repokit"
	"medixscan/internal/services/knowledge/domain"
)

// Repo defines the repository contract for knowledge base terms
type Repo interface {
	All(ctx context.Context) ([]domain.Term, error)
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

func (r *queries) All(ctx context.Context) ([]domain.Term, error) {
	const sql = `
select lower(term), lower(correct_spelling), category,
coalesce(definition, ''), source, coalesce(synonyms, '{}'),
coalesce(body_part, ''), coalesce(semantic_tag, '')
from medical_terms
order by term
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Term
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(
			&t.Term,
			&t.CorrectSpelling,
			&t.Category,
			&t.Definition,
			&t.Source,
			&t.Synonyms,
			&t.BodyPart,
			&t.SemanticTag,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
