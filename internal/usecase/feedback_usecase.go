package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"resume-match/internal/domain/feedback"
	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFeedbackInvalid      = errors.New("feedback is missing required fields")
	ErrAggregationInFlight  = errors.New("feedback aggregation already running")
	ErrFeedbackBatchFailure = errors.New("feedback aggregation failed")
)

// AggregationReport summarizes one aggregation run.
type AggregationReport struct {
	Consumed  int `json:"consumed"`
	Skipped   int `json:"skipped"`
	Proposals int `json:"proposals"`
}

type FeedbackUsecase interface {
	Submit(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error)
	// RunAggregation executes one batch over unprocessed rows. It is
	// single-flight: a run starting while another is in flight returns
	// ErrAggregationInFlight and does nothing.
	RunAggregation(ctx context.Context) (AggregationReport, error)
}

type Feedback struct {
	rows     repository.FeedbackRepository
	synonyms repository.SynonymRepository

	supportThreshold int
	batchSize        int

	running atomic.Bool
	log     *zap.Logger
}

func NewFeedbackUsecase(rows repository.FeedbackRepository, synonyms repository.SynonymRepository, supportThreshold int, log *zap.Logger) *Feedback {
	if supportThreshold < 1 {
		supportThreshold = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feedback{
		rows:             rows,
		synonyms:         synonyms,
		supportThreshold: supportThreshold,
		batchSize:        1000,
		log:              log.Named("feedback"),
	}
}

func (u *Feedback) Submit(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	if f.MatchResultID == uuid.Nil || f.OrganizationID == uuid.Nil {
		return feedback.Feedback{}, ErrFeedbackInvalid
	}
	if taxonomy.Normalize(f.SkillName) == "" {
		return feedback.Feedback{}, ErrFeedbackInvalid
	}
	f.ID = uuid.New()
	f.Processed = false
	f.CreatedAt = time.Now().UTC()

	if err := u.rows.Create(ctx, f); err != nil {
		return feedback.Feedback{}, err
	}
	return f, nil
}

func (u *Feedback) RunAggregation(ctx context.Context) (AggregationReport, error) {
	if !u.running.CompareAndSwap(false, true) {
		return AggregationReport{}, ErrAggregationInFlight
	}
	defer u.running.Store(false)

	start := time.Now()
	rows, err := u.rows.ListUnprocessed(ctx, u.batchSize)
	if err != nil {
		return AggregationReport{}, errors.Join(ErrFeedbackBatchFailure, err)
	}
	if len(rows) == 0 {
		return AggregationReport{}, nil
	}

	proposals, consumed, skipped := feedback.Aggregate(rows, u.supportThreshold)
	if skipped > 0 {
		u.log.Warn("malformed feedback rows skipped", zap.Int("count", skipped))
	}

	report := AggregationReport{Consumed: len(consumed), Skipped: skipped}
	for _, p := range proposals {
		set := taxonomy.SynonymSet{
			OrganizationID: p.OrganizationID,
			Industry:       p.Industry,
			Canonical:      p.Canonical,
			Synonyms:       []string{p.Synonym},
			Support:        p.Support,
		}
		if err := u.synonyms.CreatePending(ctx, set); err != nil {
			// One failed proposal must not lose the rest of the batch.
			u.log.Error("pending synonym candidate not created",
				zap.String("canonical", p.Canonical),
				zap.String("synonym", p.Synonym),
				zap.Error(err),
			)
			continue
		}
		report.Proposals++
		u.log.Info("synonym candidate proposed",
			zap.String("organization_id", p.OrganizationID.String()),
			zap.String("canonical", p.Canonical),
			zap.String("synonym", p.Synonym),
			zap.Int("support", p.Support),
		)
	}

	// Marking after proposal creation keeps reruns idempotent: a row is
	// consumed exactly once, and an already-processed set aggregates to a
	// no-op.
	if err := u.rows.MarkProcessed(ctx, consumed); err != nil {
		return report, errors.Join(ErrFeedbackBatchFailure, err)
	}

	u.log.Info("feedback aggregation finished",
		zap.Int("consumed", report.Consumed),
		zap.Int("skipped", report.Skipped),
		zap.Int("proposals", report.Proposals),
		zap.Duration("took", time.Since(start)),
	)
	return report, nil
}
