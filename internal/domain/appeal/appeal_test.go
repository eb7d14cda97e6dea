package appeal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAppeal() Appeal {
	return New(uuid.New(), uuid.New(), 0.42, "score feels too low")
}

func TestNew(t *testing.T) {
	a := pendingAppeal()
	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, 0.42, a.OriginalScore)
	assert.Nil(t, a.ReviewerID)
	assert.Nil(t, a.AdjustedScore)
	assert.True(t, a.IsOpen())
}

func TestAppeal_FullResolutionWalk(t *testing.T) {
	a := pendingAppeal()
	reviewer := uuid.New()

	require.NoError(t, a.Assign(reviewer))
	assert.Equal(t, StatusUnderReview, a.Status)
	require.NotNil(t, a.ReviewerID)
	assert.Equal(t, reviewer, *a.ReviewerID)

	require.NoError(t, a.Resolve(0.7, "manual review found additional experience"))
	assert.Equal(t, StatusResolved, a.Status)
	require.NotNil(t, a.AdjustedScore)
	assert.Equal(t, 0.7, *a.AdjustedScore)
	assert.Equal(t, 0.42, a.OriginalScore)
	assert.False(t, a.IsOpen())
}

func TestAppeal_RejectionWalk(t *testing.T) {
	a := pendingAppeal()
	require.NoError(t, a.Assign(uuid.New()))
	require.NoError(t, a.Reject("automated score holds up"))

	assert.Equal(t, StatusRejected, a.Status)
	assert.Nil(t, a.AdjustedScore)
}

func TestAppeal_IllegalTransitions(t *testing.T) {
	a := pendingAppeal()
	assert.ErrorIs(t, a.Resolve(0.5, "notes"), ErrInvalidTransition)
	assert.ErrorIs(t, a.Reject("notes"), ErrInvalidTransition)

	require.NoError(t, a.Assign(uuid.New()))
	assert.ErrorIs(t, a.Assign(uuid.New()), ErrInvalidTransition)

	require.NoError(t, a.Resolve(0.5, "notes"))
	assert.ErrorIs(t, a.Resolve(0.6, "again"), ErrInvalidTransition)
	assert.ErrorIs(t, a.Assign(uuid.New()), ErrInvalidTransition)
}

func TestAppeal_ResolutionGuards(t *testing.T) {
	a := pendingAppeal()
	require.NoError(t, a.Assign(uuid.New()))

	assert.ErrorIs(t, a.Resolve(0.5, ""), ErrNotesRequired)
	assert.ErrorIs(t, a.Reject(""), ErrNotesRequired)
	assert.ErrorIs(t, a.Resolve(1.5, "notes"), ErrScoreOutOfRange)
	assert.ErrorIs(t, a.Resolve(-0.1, "notes"), ErrScoreOutOfRange)

	// Failed guards leave the appeal reviewable.
	assert.Equal(t, StatusUnderReview, a.Status)
}
