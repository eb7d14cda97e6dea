package usecase

import (
	"context"
	"errors"

	"resume-match/internal/domain/appeal"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrAppealNotFound   = errors.New("appeal not found")
	ErrOpenAppealExists = errors.New("an open appeal already exists for this match result")
)

type AppealUsecase interface {
	// File opens an appeal, freezing the current automated overall score
	// as original_score. A second open appeal for the same result is a
	// conflict.
	File(ctx context.Context, matchResultID, candidateID uuid.UUID, reason string) (appeal.Appeal, error)
	Assign(ctx context.Context, appealID, reviewerID uuid.UUID) (appeal.Appeal, error)
	Resolve(ctx context.Context, appealID uuid.UUID, adjustedScore float64, notes string) (appeal.Appeal, error)
	Reject(ctx context.Context, appealID uuid.UUID, notes string) (appeal.Appeal, error)
	ListForResult(ctx context.Context, matchResultID uuid.UUID) ([]appeal.Appeal, error)
}

type Appeals struct {
	appeals repository.AppealRepository
	results repository.MatchResultRepository
	log     *zap.Logger
}

func NewAppealUsecase(appeals repository.AppealRepository, results repository.MatchResultRepository, log *zap.Logger) *Appeals {
	if log == nil {
		log = zap.NewNop()
	}
	return &Appeals{appeals: appeals, results: results, log: log.Named("appeals")}
}

func (u *Appeals) File(ctx context.Context, matchResultID, candidateID uuid.UUID, reason string) (appeal.Appeal, error) {
	res, err := u.results.FindByID(ctx, matchResultID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appeal.Appeal{}, ErrResultNotFound
		}
		return appeal.Appeal{}, err
	}

	a := appeal.New(matchResultID, candidateID, res.OverallScore, reason)
	if err := u.appeals.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrOpenAppealExists) {
			return appeal.Appeal{}, ErrOpenAppealExists
		}
		return appeal.Appeal{}, err
	}

	u.log.Info("appeal filed",
		zap.String("appeal_id", a.ID.String()),
		zap.String("match_result_id", matchResultID.String()),
		zap.Float64("original_score", a.OriginalScore),
	)
	return a, nil
}

func (u *Appeals) Assign(ctx context.Context, appealID, reviewerID uuid.UUID) (appeal.Appeal, error) {
	a, err := u.find(ctx, appealID)
	if err != nil {
		return appeal.Appeal{}, err
	}
	if err := a.Assign(reviewerID); err != nil {
		return appeal.Appeal{}, err
	}
	if err := u.appeals.Update(ctx, a); err != nil {
		return appeal.Appeal{}, err
	}
	return a, nil
}

func (u *Appeals) Resolve(ctx context.Context, appealID uuid.UUID, adjustedScore float64, notes string) (appeal.Appeal, error) {
	a, err := u.find(ctx, appealID)
	if err != nil {
		return appeal.Appeal{}, err
	}
	if err := a.Resolve(adjustedScore, notes); err != nil {
		return appeal.Appeal{}, err
	}
	// The adjustment lives on the appeal row only; the match result keeps
	// its automated scores for audit.
	if err := u.appeals.Update(ctx, a); err != nil {
		return appeal.Appeal{}, err
	}

	u.log.Info("appeal resolved",
		zap.String("appeal_id", a.ID.String()),
		zap.Float64("original_score", a.OriginalScore),
		zap.Float64("adjusted_score", adjustedScore),
	)
	return a, nil
}

func (u *Appeals) Reject(ctx context.Context, appealID uuid.UUID, notes string) (appeal.Appeal, error) {
	a, err := u.find(ctx, appealID)
	if err != nil {
		return appeal.Appeal{}, err
	}
	if err := a.Reject(notes); err != nil {
		return appeal.Appeal{}, err
	}
	if err := u.appeals.Update(ctx, a); err != nil {
		return appeal.Appeal{}, err
	}

	u.log.Info("appeal rejected", zap.String("appeal_id", a.ID.String()))
	return a, nil
}

func (u *Appeals) ListForResult(ctx context.Context, matchResultID uuid.UUID) ([]appeal.Appeal, error) {
	return u.appeals.ListByMatchResult(ctx, matchResultID)
}

func (u *Appeals) find(ctx context.Context, appealID uuid.UUID) (appeal.Appeal, error) {
	a, err := u.appeals.FindByID(ctx, appealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appeal.Appeal{}, ErrAppealNotFound
		}
		return appeal.Appeal{}, err
	}
	return a, nil
}
