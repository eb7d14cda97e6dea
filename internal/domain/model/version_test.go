package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVersion() Version {
	return Version{
		ModelName:  "resume_vacancy_matcher",
		Version:    "2.1.0",
		Weights:    DefaultWeights(),
		Thresholds: DefaultThresholds(),
	}
}

func TestVersion_Validate(t *testing.T) {
	require.NoError(t, validVersion().Validate())

	v := validVersion()
	v.ModelName = ""
	assert.Error(t, v.Validate())

	v = validVersion()
	v.Version = ""
	assert.Error(t, v.Validate())

	v = validVersion()
	v.Weights.Keyword = 0.9
	assert.Error(t, v.Validate())

	v = validVersion()
	v.Thresholds.Strong = 0.1
	assert.Error(t, v.Validate())
}

func TestVersion_MatcherVersion(t *testing.T) {
	assert.Equal(t, "resume_vacancy_matcher@2.1.0", validVersion().MatcherVersion())
}

func TestAccuracyMetrics_Fold(t *testing.T) {
	var m AccuracyMetrics
	m = m.Fold(Outcome{Correct: true})
	m = m.Fold(Outcome{Correct: true})
	m = m.Fold(Outcome{Correct: false})

	assert.Equal(t, 3, m.Samples)
	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-9)
}

func TestDefaultConfiguration_IsValid(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.NoError(t, DefaultThresholds().Validate())
}
