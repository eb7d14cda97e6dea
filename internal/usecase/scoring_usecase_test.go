package usecase

import (
	"context"
	"testing"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/domain/match"
	"resume-match/internal/domain/model"
	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoringHarness struct {
	scoring  *Scoring
	results  *memory.MatchResultStore
	entries  *memory.TaxonomyStore
	synonyms *memory.SynonymStore
}

func newScoringHarness(t *testing.T) *scoringHarness {
	t.Helper()

	results := memory.NewMatchResultStore()
	entries := memory.NewTaxonomyStore()
	synonyms := memory.NewSynonymStore()
	versions := memory.NewModelVersionStore()

	models := NewModelUsecase(versions, nil, 0, nil)
	_, err := models.Register(context.Background(), model.Version{
		ModelName:  "matcher",
		Version:    "1.0.0",
		Weights:    model.DefaultWeights(),
		Thresholds: model.DefaultThresholds(),
	})
	require.NoError(t, err)
	require.NoError(t, models.Activate(context.Background(), "matcher", "1.0.0"))

	taxonomies := NewTaxonomyUsecase(entries, synonyms, nil, 0, nil)
	cfg := config.MatcherConfig{
		DefaultModelName: "matcher",
		BatchWorkers:     2,
		BatchBuffer:      8,
		TopTerms:         5,
	}

	return &scoringHarness{
		scoring:  NewScoringUsecase(results, taxonomies, models, NewMemoryCorpus(), cfg, nil),
		results:  results,
		entries:  entries,
		synonyms: synonyms,
	}
}

func embedding(vals ...float64) []float64 { return vals }

func strongPair() ScoreRequest {
	return ScoreRequest{
		Resume: ResumeProfile{
			ID:               uuid.New(),
			Skills:           []string{"Go", "PostgreSQL", "Kubernetes"},
			ExperienceMonths: 48,
			RawText:          "senior go engineer building services on postgresql and kubernetes",
			Embedding:        embedding(0.5, 0.3, 0.2),
		},
		Vacancy: VacancyProfile{
			ID:                  uuid.New(),
			OrganizationID:      uuid.New(),
			Industry:            "software",
			RequiredSkills:      []string{"Go", "PostgreSQL"},
			Description:         "go engineer working with postgresql and kubernetes services",
			MinExperienceMonths: 24,
			Embedding:           embedding(0.5, 0.3, 0.2),
		},
	}
}

func TestScoring_Score_StrongMatch(t *testing.T) {
	h := newScoringHarness(t)

	res, err := h.scoring.Score(context.Background(), strongPair())
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.KeywordScore)
	assert.True(t, res.KeywordPassed)
	assert.True(t, res.TFIDFPassed)
	assert.True(t, res.VectorPassed)
	assert.Equal(t, match.RecommendationStrong, res.Recommendation)
	assert.True(t, res.ExperienceVerified)
	assert.Empty(t, res.DegradedSignals)
	assert.Equal(t, "matcher@1.0.0", res.MatcherVersion)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, res.MatchedSkills)
	assert.Contains(t, res.AdditionalSkills, "Kubernetes")
}

func TestScoring_Score_PersistsResult(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()

	scored, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)

	stored, err := h.scoring.GetResult(context.Background(), req.Resume.ID, req.Vacancy.ID)
	require.NoError(t, err)
	assert.Equal(t, scored.ID, stored.ID)
	assert.Equal(t, scored.OverallScore, stored.OverallScore)
}

func TestScoring_Score_RescoringOverwritesPair(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()

	first, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)
	_, err = h.scoring.Score(context.Background(), req)
	require.NoError(t, err)

	stored, err := h.scoring.GetResult(context.Background(), req.Resume.ID, req.Vacancy.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID, "rescoring keeps one row per pair")
}

func TestScoring_Score_MissingEmbeddingDegradesVectorOnly(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()
	req.Resume.Embedding = nil

	res, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, res.VectorScore)
	assert.False(t, res.VectorPassed)
	assert.Equal(t, []string{match.SignalVector}, res.DegradedSignals)
	assert.Equal(t, 1.0, res.KeywordScore, "other signals are unaffected")
	assert.NotEqual(t, match.RecommendationStrong, res.Recommendation)
}

func TestScoring_Score_MismatchedEmbeddingDegradesVector(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()
	req.Vacancy.Embedding = embedding(0.5, 0.3)

	res, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{match.SignalVector}, res.DegradedSignals)
}

func TestScoring_Score_ZeroNormEmbeddingDegradesVector(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()
	req.Resume.Embedding = embedding(0, 0, 0)

	res, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)

	assert.Zero(t, res.VectorScore)
	assert.False(t, res.VectorPassed)
	assert.Equal(t, []string{match.SignalVector}, res.DegradedSignals)
}

func TestScoring_Score_SynonymsCanonicalizBothSides(t *testing.T) {
	h := newScoringHarness(t)

	require.NoError(t, h.entries.Create(context.Background(), taxonomy.Entry{
		Industry:  "software",
		Canonical: "PostgreSQL",
		Variants:  []string{"postgres", "psql"},
		Active:    true,
	}))

	req := strongPair()
	req.Resume.Skills = []string{"Go", "psql"}
	req.Vacancy.RequiredSkills = []string{"go", "postgres"}

	res, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.KeywordScore)
	assert.Contains(t, res.MatchedSkills, "PostgreSQL")
	assert.Empty(t, res.MissingSkills)
}

func TestScoring_Score_ExperienceShortfall(t *testing.T) {
	h := newScoringHarness(t)
	req := strongPair()
	req.Resume.ExperienceMonths = 6

	res, err := h.scoring.Score(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.ExperienceVerified)
}

func TestScoring_Score_InvalidPair(t *testing.T) {
	h := newScoringHarness(t)

	req := strongPair()
	req.Resume.ID = uuid.Nil
	_, err := h.scoring.Score(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPair)
}

func TestScoring_Score_NoActiveModel(t *testing.T) {
	h := newScoringHarness(t)

	req := strongPair()
	req.ModelName = "unknown-model"
	_, err := h.scoring.Score(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoActiveModel)
}

func TestScoring_GetResult_NotFound(t *testing.T) {
	h := newScoringHarness(t)
	_, err := h.scoring.GetResult(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestScoring_ScoreBatch_AllPairsScored(t *testing.T) {
	h := newScoringHarness(t)

	reqs := make([]ScoreRequest, 0, 10)
	for i := 0; i < 10; i++ {
		reqs = append(reqs, strongPair())
	}

	seen := 0
	for item := range h.scoring.ScoreBatch(context.Background(), reqs) {
		require.NoError(t, item.Err)
		assert.NotEqual(t, uuid.Nil, item.Result.ID)
		seen++
	}
	assert.Equal(t, 10, seen)
}

func TestScoring_ScoreBatch_PerPairFailureIsIsolated(t *testing.T) {
	h := newScoringHarness(t)

	bad := strongPair()
	bad.Resume.ID = uuid.Nil
	reqs := []ScoreRequest{strongPair(), bad, strongPair()}

	failures, successes := 0, 0
	for item := range h.scoring.ScoreBatch(context.Background(), reqs) {
		if item.Err != nil {
			failures++
		} else {
			successes++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Equal(t, 2, successes)
}

func TestScoring_ScoreBatch_CancellationClosesStream(t *testing.T) {
	h := newScoringHarness(t)

	reqs := make([]ScoreRequest, 0, 100)
	for i := 0; i < 100; i++ {
		reqs = append(reqs, strongPair())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := h.scoring.ScoreBatch(ctx, reqs)

	seen := 0
	for range out {
		seen++
		if seen == 5 {
			cancel()
		}
	}
	assert.Less(t, seen, 100, "cancellation should stop the batch early")

	select {
	case _, open := <-out:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancellation")
	}
}
