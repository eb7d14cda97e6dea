package scheduler

import (
	"context"
	"errors"

	"resume-match/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AggregationScheduler runs the feedback aggregation batch on a cron
// schedule. The usecase itself is single-flight, so a tick firing while the
// previous run is still going is skipped rather than queued.
type AggregationScheduler struct {
	feedback usecase.FeedbackUsecase
	cron     *cron.Cron
	spec     string
	log      *zap.Logger
}

func NewAggregationScheduler(feedback usecase.FeedbackUsecase, spec string, log *zap.Logger) *AggregationScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AggregationScheduler{
		feedback: feedback,
		cron:     cron.New(),
		spec:     spec,
		log:      log.Named("aggregation_scheduler"),
	}
}

func (s *AggregationScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		report, err := s.feedback.RunAggregation(ctx)
		if err != nil {
			if errors.Is(err, usecase.ErrAggregationInFlight) {
				s.log.Info("previous aggregation still running, tick skipped")
				return
			}
			s.log.Error("scheduled aggregation failed", zap.Error(err))
			return
		}
		s.log.Info("scheduled aggregation run",
			zap.Int("consumed", report.Consumed),
			zap.Int("proposals", report.Proposals),
		)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("aggregation scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the schedule and waits for an in-flight run to complete.
func (s *AggregationScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("aggregation scheduler stopped")
}
