package repository

import (
	"context"

	"resume-match/internal/database"
	"resume-match/internal/domain/taxonomy"

	"github.com/google/uuid"
)

// TaxonomyRepository stores global taxonomy entries. Industry is a lookup
// key: implementations persist and match it normalized, so callers may pass
// it in any casing.
type TaxonomyRepository interface {
	Create(ctx context.Context, e taxonomy.Entry) error
	ListActiveByIndustry(ctx context.Context, industry string) ([]taxonomy.Entry, error)
}

type PostgresTaxonomyRepository struct {
	db database.DB
}

func NewPostgresTaxonomyRepository(db database.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

func (r *PostgresTaxonomyRepository) Create(ctx context.Context, e taxonomy.Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	n, err := r.db.Exec(ctx,
		`INSERT INTO skill_taxonomy (id, industry, canonical_skill_name, context, variants, active)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (industry, context, canonical_skill_name) DO NOTHING`,
		e.ID, taxonomy.Normalize(e.Industry), e.Canonical, e.Context, e.Variants, e.Active,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *PostgresTaxonomyRepository) ListActiveByIndustry(ctx context.Context, industry string) ([]taxonomy.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, industry, canonical_skill_name, context, variants, active
		 FROM skill_taxonomy
		 WHERE industry = $1 AND active = true
		 ORDER BY canonical_skill_name`,
		taxonomy.Normalize(industry))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]taxonomy.Entry, 0)
	for rows.Next() {
		var e taxonomy.Entry
		if err := rows.Scan(&e.ID, &e.Industry, &e.Canonical, &e.Context, &e.Variants, &e.Active); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
