package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"resume-match/internal/domain/feedback"
	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository"
	"resume-match/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedback(threshold int) (*Feedback, *memory.FeedbackStore, *memory.SynonymStore) {
	rows := memory.NewFeedbackStore()
	synonyms := memory.NewSynonymStore()
	return NewFeedbackUsecase(rows, synonyms, threshold, nil), rows, synonyms
}

func submitCorrection(t *testing.T, uc *Feedback, org, recruiter uuid.UUID, skill, actual string) {
	t.Helper()
	_, err := uc.Submit(context.Background(), feedback.Feedback{
		MatchResultID:  uuid.New(),
		OrganizationID: org,
		Industry:       "software",
		RecruiterID:    recruiter,
		SkillName:      skill,
		Correct:        false,
		ActualSkill:    actual,
	})
	require.NoError(t, err)
}

func TestFeedback_Submit_Validation(t *testing.T) {
	uc, _, _ := newTestFeedback(5)

	_, err := uc.Submit(context.Background(), feedback.Feedback{})
	assert.ErrorIs(t, err, ErrFeedbackInvalid)

	_, err = uc.Submit(context.Background(), feedback.Feedback{
		MatchResultID:  uuid.New(),
		OrganizationID: uuid.New(),
		SkillName:      "   ",
	})
	assert.ErrorIs(t, err, ErrFeedbackInvalid)
}

func TestFeedback_Submit_AssignsIDAndUnprocessed(t *testing.T) {
	uc, rows, _ := newTestFeedback(5)

	f, err := uc.Submit(context.Background(), feedback.Feedback{
		MatchResultID:  uuid.New(),
		OrganizationID: uuid.New(),
		SkillName:      "Go",
		Correct:        true,
		Processed:      true, // callers cannot pre-consume a row
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, f.ID)
	assert.False(t, f.Processed)

	pending, err := rows.ListUnprocessed(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestFeedback_RunAggregation_ProposesPendingCandidate(t *testing.T) {
	uc, _, synonyms := newTestFeedback(5)
	org := uuid.New()
	for i := 0; i < 6; i++ {
		submitCorrection(t, uc, org, uuid.New(), "postgres", "PostgreSQL")
	}

	report, err := uc.RunAggregation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, report.Consumed)
	assert.Equal(t, 1, report.Proposals)

	pending, err := synonyms.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, taxonomy.SynonymStatusPending, pending[0].Status)
	assert.Equal(t, "PostgreSQL", pending[0].Canonical)
	assert.Equal(t, []string{"postgres"}, pending[0].Synonyms)
	assert.Equal(t, 6, pending[0].Support)
}

func TestFeedback_RunAggregation_Idempotent(t *testing.T) {
	uc, _, synonyms := newTestFeedback(2)
	org := uuid.New()
	submitCorrection(t, uc, org, uuid.New(), "postgres", "PostgreSQL")
	submitCorrection(t, uc, org, uuid.New(), "postgres", "PostgreSQL")

	first, err := uc.RunAggregation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Consumed)

	// A rerun with nothing new consumes nothing and proposes nothing.
	second, err := uc.RunAggregation(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.Consumed)
	assert.Zero(t, second.Proposals)

	pending, err := synonyms.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestFeedback_RunAggregation_SingleFlight(t *testing.T) {
	rows := memory.NewFeedbackStore()
	uc := NewFeedbackUsecase(slowFeedbackRepo{rows, 50 * time.Millisecond}, memory.NewSynonymStore(), 5, nil)

	require.NoError(t, rows.Create(context.Background(), feedback.Feedback{
		ID:             uuid.New(),
		MatchResultID:  uuid.New(),
		OrganizationID: uuid.New(),
		SkillName:      "Go",
		Correct:        true,
	}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	inFlight := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RunAggregation(context.Background())
			if errors.Is(err, ErrAggregationInFlight) {
				mu.Lock()
				inFlight++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, inFlight, 1, "overlapping runs should be rejected")
}

func TestFeedback_RunAggregation_EmptyQueue(t *testing.T) {
	uc, _, _ := newTestFeedback(5)
	report, err := uc.RunAggregation(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Consumed)
}

// slowFeedbackRepo delays reads so overlapping aggregation runs actually
// overlap in the single-flight test.
type slowFeedbackRepo struct {
	*memory.FeedbackStore
	delay time.Duration
}

func (s slowFeedbackRepo) ListUnprocessed(ctx context.Context, limit int) ([]feedback.Feedback, error) {
	time.Sleep(s.delay)
	return s.FeedbackStore.ListUnprocessed(ctx, limit)
}

var _ repository.FeedbackRepository = slowFeedbackRepo{}
