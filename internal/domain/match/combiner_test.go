package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWeights = Weights{Keyword: 0.4, TFIDF: 0.3, Vector: 0.3}

var testThresholds = Thresholds{
	KeywordMin:       0.5,
	TFIDFMin:         0.3,
	VectorMin:        0.4,
	Strong:           0.75,
	Possible:         0.55,
	Weak:             0.35,
	MinSignalsPassed: 1,
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, testWeights.Validate())

	err := Weights{Keyword: 0.5, TFIDF: 0.5, Vector: 0.5}.Validate()
	assert.ErrorIs(t, err, ErrInvalidWeights)

	err = Weights{Keyword: 1.5, TFIDF: -0.5}.Validate()
	assert.ErrorIs(t, err, ErrInvalidWeights)

	// A float-noise deviation within tolerance is fine.
	assert.NoError(t, Weights{Keyword: 0.1 + 0.2, TFIDF: 0.3, Vector: 0.4}.Validate())
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, testThresholds.Validate())

	bad := testThresholds
	bad.Strong = 0.4 // below possible
	assert.Error(t, bad.Validate())

	bad = testThresholds
	bad.KeywordMin = 1.2
	assert.Error(t, bad.Validate())

	bad = testThresholds
	bad.MinSignalsPassed = 4
	assert.Error(t, bad.Validate())
}

func TestCombine_StrongMatch(t *testing.T) {
	out := Combine(SignalScores{Keyword: 0.9, TFIDF: 0.8, Vector: 0.85}, testWeights, testThresholds)

	assert.InDelta(t, 0.9*0.4+0.8*0.3+0.85*0.3, out.OverallScore, 1e-9)
	assert.True(t, out.KeywordPassed)
	assert.True(t, out.TFIDFPassed)
	assert.True(t, out.VectorPassed)
	assert.Equal(t, RecommendationStrong, out.Recommendation)
}

func TestCombine_PossibleMatch(t *testing.T) {
	// All signals pass but the blend lands between possible and strong.
	out := Combine(SignalScores{Keyword: 0.6, TFIDF: 0.6, Vector: 0.75}, testWeights, testThresholds)

	assert.InDelta(t, 0.645, out.OverallScore, 1e-9)
	assert.Equal(t, RecommendationPossible, out.Recommendation)
}

func TestCombine_WeakMatchWhenSignalFails(t *testing.T) {
	// Overall 0.65 would be possible_match, but a failing signal caps the
	// tier at weak_match.
	out := Combine(SignalScores{Keyword: 0.95, TFIDF: 0.2, Vector: 0.7}, testWeights, testThresholds)

	assert.False(t, out.TFIDFPassed)
	assert.GreaterOrEqual(t, out.OverallScore, testThresholds.Possible)
	assert.Equal(t, RecommendationWeak, out.Recommendation)
}

func TestCombine_Reject(t *testing.T) {
	out := Combine(SignalScores{Keyword: 0.1, TFIDF: 0.1, Vector: 0.1}, testWeights, testThresholds)
	assert.Equal(t, RecommendationReject, out.Recommendation)
}

func TestCombine_MinSignalsPassedGate(t *testing.T) {
	scores := SignalScores{Keyword: 0.9, TFIDF: 0.9, Vector: 0.1}

	strict := testThresholds
	strict.MinSignalsPassed = 3
	out := Combine(scores, testWeights, strict)
	assert.Equal(t, RecommendationReject, out.Recommendation)

	lenient := testThresholds
	lenient.MinSignalsPassed = 2
	out = Combine(scores, testWeights, lenient)
	assert.Equal(t, RecommendationWeak, out.Recommendation)
}

func TestCombine_Deterministic(t *testing.T) {
	scores := SignalScores{Keyword: 0.7, TFIDF: 0.6, Vector: 0.5}
	first := Combine(scores, testWeights, testThresholds)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Combine(scores, testWeights, testThresholds))
	}
}
