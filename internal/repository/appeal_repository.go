package repository

import (
	"context"
	"errors"

	"resume-match/internal/database"
	"resume-match/internal/domain/appeal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AppealRepository interface {
	// Create fails with ErrOpenAppealExists when the match result already
	// has a pending or under_review appeal.
	Create(ctx context.Context, a appeal.Appeal) error
	FindByID(ctx context.Context, id uuid.UUID) (appeal.Appeal, error)
	Update(ctx context.Context, a appeal.Appeal) error
	ListByMatchResult(ctx context.Context, matchResultID uuid.UUID) ([]appeal.Appeal, error)
}

type PostgresAppealRepository struct {
	db database.DB
}

func NewPostgresAppealRepository(db database.DB) *PostgresAppealRepository {
	return &PostgresAppealRepository{db: db}
}

func (r *PostgresAppealRepository) Create(ctx context.Context, a appeal.Appeal) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var open int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM score_appeals
		 WHERE match_result_id = $1 AND status IN ('pending','under_review')`,
		a.MatchResultID).Scan(&open); err != nil {
		return err
	}
	if open > 0 {
		return ErrOpenAppealExists
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO score_appeals (
			id, match_result_id, candidate_id, reviewer_id, status, reason,
			original_score, adjusted_score, notes, created_at, updated_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.MatchResultID, a.CandidateID, a.ReviewerID, a.Status, a.Reason,
		a.OriginalScore, a.AdjustedScore, a.Notes, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const appealColumns = `id, match_result_id, candidate_id, reviewer_id, status, reason,
	original_score, adjusted_score, notes, created_at, updated_at`

func (r *PostgresAppealRepository) FindByID(ctx context.Context, id uuid.UUID) (appeal.Appeal, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+appealColumns+` FROM score_appeals WHERE id = $1`, id)

	var a appeal.Appeal
	err := row.Scan(&a.ID, &a.MatchResultID, &a.CandidateID, &a.ReviewerID, &a.Status, &a.Reason,
		&a.OriginalScore, &a.AdjustedScore, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appeal.Appeal{}, ErrNotFound
		}
		return appeal.Appeal{}, err
	}
	return a, nil
}

// Update persists state transitions. original_score is deliberately not in
// the column list: it is immutable after creation.
func (r *PostgresAppealRepository) Update(ctx context.Context, a appeal.Appeal) error {
	n, err := r.db.Exec(ctx,
		`UPDATE score_appeals SET
			reviewer_id = $2, status = $3, adjusted_score = $4,
			notes = $5, updated_at = $6
		 WHERE id = $1`,
		a.ID, a.ReviewerID, a.Status, a.AdjustedScore, a.Notes, a.UpdatedAt)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresAppealRepository) ListByMatchResult(ctx context.Context, matchResultID uuid.UUID) ([]appeal.Appeal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appealColumns+` FROM score_appeals
		 WHERE match_result_id = $1 ORDER BY created_at`,
		matchResultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appeal.Appeal, 0)
	for rows.Next() {
		var a appeal.Appeal
		if err := rows.Scan(&a.ID, &a.MatchResultID, &a.CandidateID, &a.ReviewerID, &a.Status, &a.Reason,
			&a.OriginalScore, &a.AdjustedScore, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
