package repository

import (
	"context"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MatchResultRepository interface {
	Save(ctx context.Context, res match.Result) error
	FindByID(ctx context.Context, id uuid.UUID) (match.Result, error)
	FindByPair(ctx context.Context, resumeID, vacancyID uuid.UUID) (match.Result, error)
}

type PostgresMatchResultRepository struct {
	db database.DB
}

func NewPostgresMatchResultRepository(db database.DB) *PostgresMatchResultRepository {
	return &PostgresMatchResultRepository{db: db}
}

func (r *PostgresMatchResultRepository) Save(ctx context.Context, res match.Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO match_results (
			id, resume_id, vacancy_id,
			keyword_score, tfidf_score, vector_score,
			keyword_passed, tfidf_passed, vector_passed,
			overall_score, recommendation,
			matched_skills, missing_skills, additional_skills,
			matched_terms, missing_terms,
			vector_similarity, experience_verified, degraded_signals,
			matcher_version, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 ON CONFLICT (resume_id, vacancy_id) DO UPDATE SET
			keyword_score = EXCLUDED.keyword_score,
			tfidf_score = EXCLUDED.tfidf_score,
			vector_score = EXCLUDED.vector_score,
			keyword_passed = EXCLUDED.keyword_passed,
			tfidf_passed = EXCLUDED.tfidf_passed,
			vector_passed = EXCLUDED.vector_passed,
			overall_score = EXCLUDED.overall_score,
			recommendation = EXCLUDED.recommendation,
			matched_skills = EXCLUDED.matched_skills,
			missing_skills = EXCLUDED.missing_skills,
			additional_skills = EXCLUDED.additional_skills,
			matched_terms = EXCLUDED.matched_terms,
			missing_terms = EXCLUDED.missing_terms,
			vector_similarity = EXCLUDED.vector_similarity,
			experience_verified = EXCLUDED.experience_verified,
			degraded_signals = EXCLUDED.degraded_signals,
			matcher_version = EXCLUDED.matcher_version,
			created_at = EXCLUDED.created_at`,
		res.ID, res.ResumeID, res.VacancyID,
		res.KeywordScore, res.TFIDFScore, res.VectorScore,
		res.KeywordPassed, res.TFIDFPassed, res.VectorPassed,
		res.OverallScore, res.Recommendation,
		res.MatchedSkills, res.MissingSkills, res.AdditionalSkills,
		res.MatchedTerms, res.MissingTerms,
		res.VectorSimilarity, res.ExperienceVerified, res.DegradedSignals,
		res.MatcherVersion, res.CreatedAt,
	)
	return err
}

const matchResultColumns = `id, resume_id, vacancy_id,
	keyword_score, tfidf_score, vector_score,
	keyword_passed, tfidf_passed, vector_passed,
	overall_score, recommendation,
	matched_skills, missing_skills, additional_skills,
	matched_terms, missing_terms,
	vector_similarity, experience_verified, degraded_signals,
	matcher_version, created_at`

func (r *PostgresMatchResultRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchResultColumns+` FROM match_results WHERE id = $1`, id)
	return scanMatchResult(row)
}

func (r *PostgresMatchResultRepository) FindByPair(ctx context.Context, resumeID, vacancyID uuid.UUID) (match.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchResultColumns+` FROM match_results WHERE resume_id = $1 AND vacancy_id = $2`,
		resumeID, vacancyID)
	return scanMatchResult(row)
}

func scanMatchResult(row database.Row) (match.Result, error) {
	var res match.Result
	err := row.Scan(
		&res.ID, &res.ResumeID, &res.VacancyID,
		&res.KeywordScore, &res.TFIDFScore, &res.VectorScore,
		&res.KeywordPassed, &res.TFIDFPassed, &res.VectorPassed,
		&res.OverallScore, &res.Recommendation,
		&res.MatchedSkills, &res.MissingSkills, &res.AdditionalSkills,
		&res.MatchedTerms, &res.MissingTerms,
		&res.VectorSimilarity, &res.ExperienceVerified, &res.DegradedSignals,
		&res.MatcherVersion, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Result{}, ErrNotFound
		}
		return match.Result{}, err
	}
	return res, nil
}
