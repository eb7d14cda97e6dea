package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resume-match/internal/database"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ModelVersionRepository interface {
	Create(ctx context.Context, v model.Version) error
	Find(ctx context.Context, modelName, version string) (model.Version, error)
	FindActive(ctx context.Context, modelName string) (model.Version, error)
	ListByName(ctx context.Context, modelName string) ([]model.Version, error)
	ListExperiments(ctx context.Context, modelName string) ([]model.Version, error)

	// Activate flips exactly one active flag per model name. expectedActive
	// is the version string the caller observed as currently active (""
	// when none); if the stored state changed underneath, the call fails
	// with ErrActivationConflict and no row is modified.
	Activate(ctx context.Context, modelName, version, expectedActive string) error

	UpdateAccuracy(ctx context.Context, modelName, version string, metrics model.AccuracyMetrics) error
}

type PostgresModelVersionRepository struct {
	db database.DB
}

func NewPostgresModelVersionRepository(db database.DB) *PostgresModelVersionRepository {
	return &PostgresModelVersionRepository{db: db}
}

func (r *PostgresModelVersionRepository) Create(ctx context.Context, v model.Version) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	weights, err := json.Marshal(v.Weights)
	if err != nil {
		return err
	}
	thresholds, err := json.Marshal(v.Thresholds)
	if err != nil {
		return err
	}
	metrics, err := json.Marshal(v.Accuracy)
	if err != nil {
		return err
	}

	n, err := r.db.Exec(ctx,
		`INSERT INTO model_versions (
			id, model_name, version, is_active, is_experiment,
			weight_config, threshold_config, accuracy_metrics, created_at
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (model_name, version) DO NOTHING`,
		v.ID, v.ModelName, v.Version, v.IsActive, v.IsExperiment,
		weights, thresholds, metrics, v.CreatedAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

const modelVersionColumns = `id, model_name, version, is_active, is_experiment,
	weight_config, threshold_config, accuracy_metrics, created_at`

func (r *PostgresModelVersionRepository) Find(ctx context.Context, modelName, version string) (model.Version, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+modelVersionColumns+` FROM model_versions WHERE model_name = $1 AND version = $2`,
		modelName, version)
	return scanModelVersion(row)
}

func (r *PostgresModelVersionRepository) FindActive(ctx context.Context, modelName string) (model.Version, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+modelVersionColumns+` FROM model_versions WHERE model_name = $1 AND is_active = true`,
		modelName)
	return scanModelVersion(row)
}

func (r *PostgresModelVersionRepository) ListByName(ctx context.Context, modelName string) ([]model.Version, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+modelVersionColumns+` FROM model_versions WHERE model_name = $1 ORDER BY created_at`,
		modelName)
	if err != nil {
		return nil, err
	}
	return collectModelVersions(rows)
}

func (r *PostgresModelVersionRepository) ListExperiments(ctx context.Context, modelName string) ([]model.Version, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+modelVersionColumns+` FROM model_versions
		 WHERE model_name = $1 AND is_experiment = true AND is_active = false
		 ORDER BY version`,
		modelName)
	if err != nil {
		return nil, err
	}
	return collectModelVersions(rows)
}

func (r *PostgresModelVersionRepository) Activate(ctx context.Context, modelName, version, expectedActive string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Re-read the active version under the transaction; a mismatch means a
	// concurrent activation won and the caller must retry.
	var current string
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(
			(SELECT version FROM model_versions
			 WHERE model_name = $1 AND is_active = true FOR UPDATE), '')`,
		modelName).Scan(&current)
	if err != nil {
		return err
	}
	if current != expectedActive {
		return ErrActivationConflict
	}

	if current != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE model_versions SET is_active = false
			 WHERE model_name = $1 AND version = $2`,
			modelName, current); err != nil {
			return err
		}
	}

	n, err := tx.Exec(ctx,
		`UPDATE model_versions SET is_active = true
		 WHERE model_name = $1 AND version = $2`,
		modelName, version)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresModelVersionRepository) UpdateAccuracy(ctx context.Context, modelName, version string, metrics model.AccuracyMetrics) error {
	b, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE model_versions SET accuracy_metrics = $3
		 WHERE model_name = $1 AND version = $2`,
		modelName, version, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanModelVersion(row database.Row) (model.Version, error) {
	var (
		v          model.Version
		weights    []byte
		thresholds []byte
		metrics    []byte
	)
	err := row.Scan(&v.ID, &v.ModelName, &v.Version, &v.IsActive, &v.IsExperiment,
		&weights, &thresholds, &metrics, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Version{}, ErrNotFound
		}
		return model.Version{}, err
	}
	if err := unmarshalModelConfig(&v, weights, thresholds, metrics); err != nil {
		return model.Version{}, err
	}
	return v, nil
}

func collectModelVersions(rows database.Rows) ([]model.Version, error) {
	defer rows.Close()
	out := make([]model.Version, 0)
	for rows.Next() {
		var (
			v          model.Version
			weights    []byte
			thresholds []byte
			metrics    []byte
		)
		if err := rows.Scan(&v.ID, &v.ModelName, &v.Version, &v.IsActive, &v.IsExperiment,
			&weights, &thresholds, &metrics, &v.CreatedAt); err != nil {
			return nil, err
		}
		if err := unmarshalModelConfig(&v, weights, thresholds, metrics); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func unmarshalModelConfig(v *model.Version, weights, thresholds, metrics []byte) error {
	if len(weights) > 0 {
		if err := json.Unmarshal(weights, &v.Weights); err != nil {
			return err
		}
	}
	if len(thresholds) > 0 {
		var t match.Thresholds
		if err := json.Unmarshal(thresholds, &t); err != nil {
			return err
		}
		v.Thresholds = t
	}
	if len(metrics) > 0 {
		if err := json.Unmarshal(metrics, &v.Accuracy); err != nil {
			return err
		}
	}
	return nil
}
