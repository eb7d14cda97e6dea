package repository

import (
	"context"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/feedback"

	"github.com/google/uuid"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f feedback.Feedback) error
	ListUnprocessed(ctx context.Context, limit int) ([]feedback.Feedback, error)
	MarkProcessed(ctx context.Context, ids []uuid.UUID) error
}

type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (r *PostgresFeedbackRepository) Create(ctx context.Context, f feedback.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_feedback (
			id, match_result_id, organization_id, industry, recruiter_id,
			skill_name, correct, actual_skill, processed, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		f.ID, f.MatchResultID, f.OrganizationID, f.Industry, f.RecruiterID,
		f.SkillName, f.Correct, f.ActualSkill, f.Processed, f.CreatedAt,
	)
	return err
}

func (r *PostgresFeedbackRepository) ListUnprocessed(ctx context.Context, limit int) ([]feedback.Feedback, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, match_result_id, organization_id, industry, recruiter_id,
			skill_name, correct, actual_skill, processed, created_at
		 FROM skill_feedback
		 WHERE processed = false
		 ORDER BY created_at
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feedback.Feedback, 0)
	for rows.Next() {
		var f feedback.Feedback
		if err := rows.Scan(&f.ID, &f.MatchResultID, &f.OrganizationID, &f.Industry, &f.RecruiterID,
			&f.SkillName, &f.Correct, &f.ActualSkill, &f.Processed, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *PostgresFeedbackRepository) MarkProcessed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE skill_feedback SET processed = true WHERE id = ANY($1) AND processed = false`,
		ids)
	return err
}
