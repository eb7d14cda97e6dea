package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"resume-match/internal/config"
	"resume-match/internal/database"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/repository"
	"resume-match/internal/repository/memory"
	"resume-match/internal/scheduler"
	"resume-match/internal/usecase"
)

// Container owns every long-lived dependency. With no database configured it
// falls back to the in-memory stores, which keep the exact same semantics;
// useful for local runs and smoke tests.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB

	Results  repository.MatchResultRepository
	Versions repository.ModelVersionRepository
	Taxonomy repository.TaxonomyRepository
	Synonyms repository.SynonymRepository
	Feedback repository.FeedbackRepository
	Appeals  repository.AppealRepository

	Cache  usecase.Cache
	Corpus usecase.CorpusStatsProvider

	Taxonomies usecase.TaxonomyUsecase
	Models     usecase.ModelUsecase
	Scoring    usecase.ScoringUsecase
	Feedbacks  usecase.FeedbackUsecase
	AppealsUC  usecase.AppealUsecase

	Scheduler *scheduler.AggregationScheduler
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Container{Config: cfg, Log: log}

	if cfg.HasDatabase() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		c.DB = db

		c.Results = repository.NewPostgresMatchResultRepository(db)
		c.Versions = repository.NewPostgresModelVersionRepository(db)
		c.Taxonomy = repository.NewPostgresTaxonomyRepository(db)
		c.Synonyms = repository.NewPostgresSynonymRepository(db)
		c.Feedback = repository.NewPostgresFeedbackRepository(db)
		c.Appeals = repository.NewPostgresAppealRepository(db)
	} else {
		log.Warn("no database configured, using in-memory stores")

		c.Results = memory.NewMatchResultStore()
		c.Versions = memory.NewModelVersionStore()
		c.Taxonomy = memory.NewTaxonomyStore()
		c.Synonyms = memory.NewSynonymStore()
		c.Feedback = memory.NewFeedbackStore()
		c.Appeals = memory.NewAppealStore()
	}

	c.Cache = cache.NewRedis(cfg.Redis, log)
	c.Corpus = usecase.NewMemoryCorpus()

	c.Taxonomies = usecase.NewTaxonomyUsecase(c.Taxonomy, c.Synonyms, c.Cache, cfg.Redis.TTL, log)
	c.Models = usecase.NewModelUsecase(c.Versions, c.Cache, cfg.Redis.TTL, log)
	c.Scoring = usecase.NewScoringUsecase(c.Results, c.Taxonomies, c.Models, c.Corpus, cfg.Matcher, log)
	c.Feedbacks = usecase.NewFeedbackUsecase(c.Feedback, c.Synonyms, cfg.Aggregation.SupportThreshold, log)
	c.AppealsUC = usecase.NewAppealUsecase(c.Appeals, c.Results, log)

	c.Scheduler = scheduler.NewAggregationScheduler(c.Feedbacks, cfg.Aggregation.CronSpec, log)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
