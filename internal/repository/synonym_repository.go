package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/taxonomy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SynonymRepository interface {
	// CreatePending records a candidate produced by the feedback
	// aggregator. Re-proposing the same (org, industry, canonical) while a
	// pending candidate exists merges the synonyms and bumps support
	// instead of duplicating.
	CreatePending(ctx context.Context, s taxonomy.SynonymSet) error

	ListActive(ctx context.Context, organizationID uuid.UUID, industry string) ([]taxonomy.SynonymSet, error)
	ListPending(ctx context.Context) ([]taxonomy.SynonymSet, error)
	FindByID(ctx context.Context, id uuid.UUID) (taxonomy.SynonymSet, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresSynonymRepository struct {
	db database.DB
}

func NewPostgresSynonymRepository(db database.DB) *PostgresSynonymRepository {
	return &PostgresSynonymRepository{db: db}
}

func (r *PostgresSynonymRepository) CreatePending(ctx context.Context, s taxonomy.SynonymSet) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.Status = taxonomy.SynonymStatusPending

	_, err := r.db.Exec(ctx,
		`INSERT INTO custom_synonyms (
			id, organization_id, industry, canonical_skill, context,
			synonyms, status, support, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (organization_id, industry, canonical_skill, context) WHERE status = 'pending'
		 DO UPDATE SET
			synonyms = (SELECT ARRAY(SELECT DISTINCT unnest(custom_synonyms.synonyms || EXCLUDED.synonyms))),
			support = custom_synonyms.support + EXCLUDED.support`,
		s.ID, s.OrganizationID, taxonomy.Normalize(s.Industry), s.Canonical, s.Context,
		s.Synonyms, s.Status, s.Support, s.CreatedAt,
	)
	return err
}

const synonymColumns = `id, organization_id, industry, canonical_skill, context,
	synonyms, status, support, created_at, reviewed_at`

func (r *PostgresSynonymRepository) ListActive(ctx context.Context, organizationID uuid.UUID, industry string) ([]taxonomy.SynonymSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+synonymColumns+` FROM custom_synonyms
		 WHERE organization_id = $1 AND industry = $2 AND status = 'active'
		 ORDER BY canonical_skill`,
		organizationID, taxonomy.Normalize(industry))
	if err != nil {
		return nil, err
	}
	return collectSynonymSets(rows)
}

func (r *PostgresSynonymRepository) ListPending(ctx context.Context) ([]taxonomy.SynonymSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+synonymColumns+` FROM custom_synonyms
		 WHERE status = 'pending'
		 ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return collectSynonymSets(rows)
}

func (r *PostgresSynonymRepository) FindByID(ctx context.Context, id uuid.UUID) (taxonomy.SynonymSet, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+synonymColumns+` FROM custom_synonyms WHERE id = $1`, id)

	var s taxonomy.SynonymSet
	err := row.Scan(&s.ID, &s.OrganizationID, &s.Industry, &s.Canonical, &s.Context,
		&s.Synonyms, &s.Status, &s.Support, &s.CreatedAt, &s.ReviewedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taxonomy.SynonymSet{}, ErrNotFound
		}
		return taxonomy.SynonymSet{}, err
	}
	return s, nil
}

func (r *PostgresSynonymRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE custom_synonyms SET status = $2, reviewed_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectSynonymSets(rows database.Rows) ([]taxonomy.SynonymSet, error) {
	defer rows.Close()
	out := make([]taxonomy.SynonymSet, 0)
	for rows.Next() {
		var s taxonomy.SynonymSet
		if err := rows.Scan(&s.ID, &s.OrganizationID, &s.Industry, &s.Canonical, &s.Context,
			&s.Synonyms, &s.Status, &s.Support, &s.CreatedAt, &s.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
