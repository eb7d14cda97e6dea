package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/domain/match"
	"resume-match/internal/repository"
	"resume-match/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrResultNotFound = errors.New("match result not found")
	ErrInvalidPair    = errors.New("resume and vacancy ids are required")
)

// ResumeProfile is the already-extracted view of a candidate resume. Text
// extraction and embedding computation happen upstream.
type ResumeProfile struct {
	ID               uuid.UUID
	Skills           []string
	ExperienceMonths int
	RawText          string
	Embedding        []float64
}

// VacancyProfile is the ingested view of a vacancy.
type VacancyProfile struct {
	ID                  uuid.UUID
	OrganizationID      uuid.UUID
	Industry            string
	RequiredSkills      []string
	Description         string
	MinExperienceMonths int
	Embedding           []float64
}

type ScoreRequest struct {
	Resume    ResumeProfile
	Vacancy   VacancyProfile
	ModelName string
}

// BatchItem is one element of the lazy batch result sequence. Err is set
// when that pair failed; the rest of the batch is unaffected.
type BatchItem struct {
	ResumeID  uuid.UUID
	VacancyID uuid.UUID
	Result    match.Result
	Err       error
}

type ScoringUsecase interface {
	Score(ctx context.Context, req ScoreRequest) (match.Result, error)
	// ScoreBatch streams results as pairs complete. The returned channel is
	// closed once every pair has been scored or the context is cancelled;
	// cancellation stops before the next pair, never mid-write.
	ScoreBatch(ctx context.Context, reqs []ScoreRequest) <-chan BatchItem
	GetResult(ctx context.Context, resumeID, vacancyID uuid.UUID) (match.Result, error)
}

type Scoring struct {
	results    repository.MatchResultRepository
	taxonomies TaxonomyUsecase
	models     ModelUsecase
	corpus     CorpusStatsProvider
	cfg        config.MatcherConfig
	log        *zap.Logger
}

func NewScoringUsecase(
	results repository.MatchResultRepository,
	taxonomies TaxonomyUsecase,
	models ModelUsecase,
	corpus CorpusStatsProvider,
	cfg config.MatcherConfig,
	log *zap.Logger,
) *Scoring {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scoring{
		results:    results,
		taxonomies: taxonomies,
		models:     models,
		corpus:     corpus,
		cfg:        cfg,
		log:        log.Named("scoring"),
	}
}

func (u *Scoring) Score(ctx context.Context, req ScoreRequest) (match.Result, error) {
	if req.Resume.ID == uuid.Nil || req.Vacancy.ID == uuid.Nil {
		return match.Result{}, ErrInvalidPair
	}

	modelName := req.ModelName
	if modelName == "" {
		modelName = u.cfg.DefaultModelName
	}

	version, err := u.models.AssignVersion(ctx, modelName, req.Resume.ID, req.Vacancy.ID)
	if err != nil {
		return match.Result{}, err
	}

	snap, err := u.taxonomies.Snapshot(ctx, req.Vacancy.Industry, req.Vacancy.OrganizationID)
	if err != nil {
		return match.Result{}, fmt.Errorf("pair %s/%s: %w", req.Resume.ID, req.Vacancy.ID, err)
	}

	requiredSkills, _ := snap.ResolveSet(req.Vacancy.RequiredSkills)
	resumeSkills, _ := snap.ResolveSet(req.Resume.Skills)

	stats, err := u.corpus.Stats(ctx)
	if err != nil {
		return match.Result{}, fmt.Errorf("corpus stats: %w", err)
	}

	// The three signals are independent; run them concurrently and join at
	// the combiner. A signal failure degrades that signal to its sentinel
	// rather than failing the pair.
	var (
		kw     match.KeywordResult
		lex    match.TFIDFResult
		vec    match.VectorResult
		vecErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		kw = match.Keyword(match.KeywordInput{
			RequiredSkills:           requiredSkills,
			ResumeSkills:             resumeSkills,
			RequiredExperienceMonths: req.Vacancy.MinExperienceMonths,
			ResumeExperienceMonths:   req.Resume.ExperienceMonths,
		})
		return nil
	})
	g.Go(func() error {
		lex = match.TFIDF(req.Resume.RawText, req.Vacancy.Description, stats, u.cfg.TopTerms)
		return nil
	})
	g.Go(func() error {
		v, verr := match.Vector(req.Resume.Embedding, req.Vacancy.Embedding)
		if verr != nil {
			u.log.Warn("vector signal degraded",
				zap.String("resume_id", req.Resume.ID.String()),
				zap.String("vacancy_id", req.Vacancy.ID.String()),
				zap.String("matcher_version", version.MatcherVersion()),
				zap.Error(verr),
			)
			vec = match.VectorResult{}
			vecErr = verr
			return nil
		}
		vec = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return match.Result{}, err
	}

	var degraded []string
	if vecErr != nil {
		degraded = append(degraded, match.SignalVector)
	}

	signals := match.SignalScores{Keyword: kw.Score, TFIDF: lex.Score, Vector: vec.Score}
	outcome := match.Combine(signals, version.Weights, version.Thresholds)

	result := match.Result{
		ID:        uuid.New(),
		ResumeID:  req.Resume.ID,
		VacancyID: req.Vacancy.ID,

		KeywordScore: kw.Score,
		TFIDFScore:   lex.Score,
		VectorScore:  vec.Score,

		KeywordPassed: outcome.KeywordPassed,
		TFIDFPassed:   outcome.TFIDFPassed,
		VectorPassed:  outcome.VectorPassed && vecErr == nil,

		OverallScore:   outcome.OverallScore,
		Recommendation: outcome.Recommendation,

		MatchedSkills:    kw.MatchedSkills,
		MissingSkills:    kw.MissingSkills,
		AdditionalSkills: kw.AdditionalSkills,
		MatchedTerms:     lex.MatchedTerms,
		MissingTerms:     lex.MissingTerms,

		VectorSimilarity:   vec.Similarity,
		ExperienceVerified: kw.ExperienceVerified,
		DegradedSignals:    degraded,

		MatcherVersion: version.MatcherVersion(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := u.results.Save(ctx, result); err != nil {
		return match.Result{}, fmt.Errorf("persist result for pair %s/%s: %w", req.Resume.ID, req.Vacancy.ID, err)
	}

	// Grow the lexical corpus with both documents now that the pair
	// scored; future scores see sharper IDF weights.
	_ = u.corpus.AddDocument(ctx, match.Tokenize(req.Vacancy.Description))
	_ = u.corpus.AddDocument(ctx, match.Tokenize(req.Resume.RawText))

	u.log.Info("pair scored",
		zap.String("resume_id", req.Resume.ID.String()),
		zap.String("vacancy_id", req.Vacancy.ID.String()),
		zap.String("matcher_version", result.MatcherVersion),
		zap.Float64("overall", result.OverallScore),
		zap.String("recommendation", result.Recommendation),
		zap.Strings("degraded", degraded),
	)
	return result, nil
}

func (u *Scoring) ScoreBatch(ctx context.Context, reqs []ScoreRequest) <-chan BatchItem {
	out := make(chan BatchItem, u.cfg.BatchBuffer)

	pool := worker.NewPool(u.cfg.BatchWorkers, len(reqs))
	for _, req := range reqs {
		req := req
		pool.Submit(func(taskCtx context.Context) error {
			res, err := u.Score(taskCtx, req)
			item := BatchItem{
				ResumeID:  req.Resume.ID,
				VacancyID: req.Vacancy.ID,
				Result:    res,
				Err:       err,
			}
			select {
			case <-taskCtx.Done():
				return taskCtx.Err()
			case out <- item:
			}
			return err
		})
	}
	pool.Close()

	results := pool.Run(ctx)
	go func() {
		defer close(out)
		failed := 0
		total := 0
		for r := range results {
			total++
			if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
				failed++
			}
		}
		u.log.Info("batch finished",
			zap.Int("pairs", total),
			zap.Int("failed", failed),
			zap.Bool("cancelled", ctx.Err() != nil),
		)
	}()
	return out
}

func (u *Scoring) GetResult(ctx context.Context, resumeID, vacancyID uuid.UUID) (match.Result, error) {
	res, err := u.results.FindByPair(ctx, resumeID, vacancyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return match.Result{}, ErrResultNotFound
		}
		return match.Result{}, err
	}
	return res, nil
}
