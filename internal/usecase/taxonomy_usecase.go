package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSynonymNotFound      = errors.New("synonym set not found")
	ErrSynonymAlreadyClosed = errors.New("synonym set already reviewed")
)

// Review verdicts accepted by ReviewCandidate.
const (
	ReviewPromote = "promote"
	ReviewDiscard = "discard"
)

type TaxonomyUsecase interface {
	// Snapshot returns the immutable taxonomy view for one scoring
	// operation. Concurrent promotions never affect a snapshot already
	// handed out.
	Snapshot(ctx context.Context, industry string, organizationID uuid.UUID) (*taxonomy.Snapshot, error)

	CreateEntry(ctx context.Context, e taxonomy.Entry) error
	ListPendingCandidates(ctx context.Context) ([]taxonomy.SynonymSet, error)
	ReviewCandidate(ctx context.Context, id uuid.UUID, verdict string) (taxonomy.SynonymSet, error)
}

type Taxonomy struct {
	entries  repository.TaxonomyRepository
	synonyms repository.SynonymRepository
	cache    Cache
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewTaxonomyUsecase(entries repository.TaxonomyRepository, synonyms repository.SynonymRepository, cache Cache, cacheTTL time.Duration, log *zap.Logger) *Taxonomy {
	if log == nil {
		log = zap.NewNop()
	}
	return &Taxonomy{entries: entries, synonyms: synonyms, cache: cache, cacheTTL: cacheTTL, log: log.Named("taxonomy")}
}

type snapshotPayload struct {
	Entries   []taxonomy.Entry      `json:"entries"`
	Overrides []taxonomy.SynonymSet `json:"overrides"`
}

func snapshotCacheKey(industry string, organizationID uuid.UUID) string {
	return fmt.Sprintf("taxonomy:snapshot:%s:%s", taxonomy.Normalize(industry), organizationID)
}

func (u *Taxonomy) Snapshot(ctx context.Context, industry string, organizationID uuid.UUID) (*taxonomy.Snapshot, error) {
	key := snapshotCacheKey(industry, organizationID)

	if u.cache != nil {
		var payload snapshotPayload
		hit, err := u.cache.GetJSON(ctx, key, &payload)
		if err == nil && hit {
			return taxonomy.BuildSnapshot(payload.Entries, payload.Overrides), nil
		}
	}

	entries, err := u.entries.ListActiveByIndustry(ctx, industry)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy for industry %q: %w", industry, err)
	}

	var overrides []taxonomy.SynonymSet
	if organizationID != uuid.Nil {
		overrides, err = u.synonyms.ListActive(ctx, organizationID, industry)
		if err != nil {
			return nil, fmt.Errorf("load org synonyms for %s: %w", organizationID, err)
		}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, snapshotPayload{Entries: entries, Overrides: overrides}, u.cacheTTL); err != nil {
			u.log.Debug("snapshot cache write failed", zap.Error(err))
		}
	}

	return taxonomy.BuildSnapshot(entries, overrides), nil
}

func (u *Taxonomy) CreateEntry(ctx context.Context, e taxonomy.Entry) error {
	if err := u.entries.Create(ctx, e); err != nil {
		return err
	}
	u.invalidateSnapshots(ctx)
	return nil
}

func (u *Taxonomy) ListPendingCandidates(ctx context.Context) ([]taxonomy.SynonymSet, error) {
	return u.synonyms.ListPending(ctx)
}

// ReviewCandidate promotes or discards a pending candidate. Promotion makes
// the synonym set visible to future snapshots only; in-flight scoring keeps
// the view it started with.
func (u *Taxonomy) ReviewCandidate(ctx context.Context, id uuid.UUID, verdict string) (taxonomy.SynonymSet, error) {
	set, err := u.synonyms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return taxonomy.SynonymSet{}, ErrSynonymNotFound
		}
		return taxonomy.SynonymSet{}, err
	}
	if set.Status != taxonomy.SynonymStatusPending {
		return taxonomy.SynonymSet{}, ErrSynonymAlreadyClosed
	}

	status := taxonomy.SynonymStatusDiscarded
	if verdict == ReviewPromote {
		status = taxonomy.SynonymStatusActive
	}
	if err := u.synonyms.UpdateStatus(ctx, id, status); err != nil {
		return taxonomy.SynonymSet{}, err
	}
	set.Status = status

	if status == taxonomy.SynonymStatusActive {
		u.invalidateSnapshots(ctx)
	}

	u.log.Info("synonym candidate reviewed",
		zap.String("id", id.String()),
		zap.String("canonical", set.Canonical),
		zap.String("verdict", status),
	)
	return set, nil
}

func (u *Taxonomy) invalidateSnapshots(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, "taxonomy:snapshot:*"); err != nil {
		u.log.Debug("snapshot cache invalidation failed", zap.Error(err))
	}
}
