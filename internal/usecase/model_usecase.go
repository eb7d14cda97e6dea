package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"resume-match/internal/domain/model"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrModelNotFound       = errors.New("model version not found")
	ErrModelExists         = errors.New("model version already registered")
	ErrNoActiveModel       = errors.New("no active version for model")
	ErrActivationConflict  = errors.New("concurrent activation detected, retry")
	ErrInvalidModelVersion = errors.New("invalid model version configuration")
)

type ModelUsecase interface {
	Register(ctx context.Context, v model.Version) (model.Version, error)
	Activate(ctx context.Context, modelName, version string) error

	// AssignVersion deterministically buckets a pair into the active
	// version or one of the experiment versions. The same pair always
	// lands in the same bucket while the experiment set is unchanged.
	AssignVersion(ctx context.Context, modelName string, resumeID, vacancyID uuid.UUID) (model.Version, error)

	RecordOutcome(ctx context.Context, modelName, version string, outcome model.Outcome) (model.AccuracyMetrics, error)
	ListVersions(ctx context.Context, modelName string) ([]model.Version, error)
}

type Models struct {
	versions repository.ModelVersionRepository
	cache    Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewModelUsecase(versions repository.ModelVersionRepository, cache Cache, cacheTTL time.Duration, log *zap.Logger) *Models {
	if log == nil {
		log = zap.NewNop()
	}
	return &Models{versions: versions, cache: cache, cacheTTL: cacheTTL, log: log.Named("models")}
}

func activeModelCacheKey(modelName string) string {
	return "model:active:" + modelName
}

// Register validates and stores a new version. Versions are inactive on
// registration regardless of what the caller set; activation is a separate,
// guarded operation.
func (u *Models) Register(ctx context.Context, v model.Version) (model.Version, error) {
	v.IsActive = false
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if err := v.Validate(); err != nil {
		return model.Version{}, fmt.Errorf("%w: %v", ErrInvalidModelVersion, err)
	}
	if err := u.versions.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.Version{}, ErrModelExists
		}
		return model.Version{}, err
	}
	u.log.Info("model version registered",
		zap.String("model", v.ModelName),
		zap.String("version", v.Version),
		zap.Bool("experiment", v.IsExperiment),
	)
	return v, nil
}

// Activate performs one compare-and-swap attempt: read the currently active
// version, then ask the store to swap only if that observation still holds.
// A concurrent activation surfaces as ErrActivationConflict and the caller
// retries with fresh state.
func (u *Models) Activate(ctx context.Context, modelName, version string) error {
	if _, err := u.versions.Find(ctx, modelName, version); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrModelNotFound
		}
		return err
	}

	expected := ""
	current, err := u.versions.FindActive(ctx, modelName)
	switch {
	case err == nil:
		expected = current.Version
	case errors.Is(err, repository.ErrNotFound):
	default:
		return err
	}

	if expected == version {
		return nil
	}

	if err := u.versions.Activate(ctx, modelName, version, expected); err != nil {
		if errors.Is(err, repository.ErrActivationConflict) {
			return ErrActivationConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrModelNotFound
		}
		return err
	}

	if u.cache != nil {
		if err := u.cache.Delete(ctx, activeModelCacheKey(modelName)); err != nil {
			u.log.Debug("active model cache invalidation failed", zap.Error(err))
		}
	}

	u.log.Info("model version activated",
		zap.String("model", modelName),
		zap.String("version", version),
		zap.String("previous", expected),
	)
	return nil
}

func (u *Models) AssignVersion(ctx context.Context, modelName string, resumeID, vacancyID uuid.UUID) (model.Version, error) {
	active, err := u.findActiveCached(ctx, modelName)
	if err != nil {
		return model.Version{}, err
	}

	experiments, err := u.versions.ListExperiments(ctx, modelName)
	if err != nil {
		return model.Version{}, err
	}
	if len(experiments) == 0 {
		return active, nil
	}

	buckets := append([]model.Version{active}, experiments...)
	idx := pairBucket(resumeID, vacancyID, len(buckets))
	return buckets[idx], nil
}

func (u *Models) RecordOutcome(ctx context.Context, modelName, version string, outcome model.Outcome) (model.AccuracyMetrics, error) {
	v, err := u.versions.Find(ctx, modelName, version)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.AccuracyMetrics{}, ErrModelNotFound
		}
		return model.AccuracyMetrics{}, err
	}

	metrics := v.Accuracy.Fold(outcome)
	if err := u.versions.UpdateAccuracy(ctx, modelName, version, metrics); err != nil {
		return model.AccuracyMetrics{}, err
	}
	return metrics, nil
}

func (u *Models) ListVersions(ctx context.Context, modelName string) ([]model.Version, error) {
	versions, err := u.versions.ListByName(ctx, modelName)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrModelNotFound
	}
	return versions, nil
}

func (u *Models) findActiveCached(ctx context.Context, modelName string) (model.Version, error) {
	key := activeModelCacheKey(modelName)
	if u.cache != nil {
		var cached model.Version
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	active, err := u.versions.FindActive(ctx, modelName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Version{}, fmt.Errorf("%w: %s", ErrNoActiveModel, modelName)
		}
		return model.Version{}, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, active, u.cacheTTL); err != nil {
			u.log.Debug("active model cache write failed", zap.Error(err))
		}
	}
	return active, nil
}

// pairBucket hashes the pair ids into [0, n). FNV-1a keeps the assignment
// stable across processes and restarts.
func pairBucket(resumeID, vacancyID uuid.UUID, n int) int {
	h := fnv.New64a()
	_, _ = h.Write(resumeID[:])
	_, _ = h.Write(vacancyID[:])
	return int(h.Sum64() % uint64(n))
}
