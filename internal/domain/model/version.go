package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/match"
)

// Version is one immutable scoring configuration for a named model. At most
// one version per model name is active; activation is an explicit
// compare-and-swap operation, never a shared mutable flag.
type Version struct {
	ID           uuid.UUID
	ModelName    string
	Version      string
	IsActive     bool
	IsExperiment bool

	Weights    match.Weights
	Thresholds match.Thresholds

	Accuracy AccuracyMetrics

	CreatedAt time.Time
}

// Validate rejects a misconfigured version at registration time so scoring
// never has to deal with bad weights or thresholds.
func (v Version) Validate() error {
	if v.ModelName == "" {
		return fmt.Errorf("model_name is required")
	}
	if v.Version == "" {
		return fmt.Errorf("version is required")
	}
	if err := v.Weights.Validate(); err != nil {
		return fmt.Errorf("model %s@%s: %w", v.ModelName, v.Version, err)
	}
	if err := v.Thresholds.Validate(); err != nil {
		return fmt.Errorf("model %s@%s: %w", v.ModelName, v.Version, err)
	}
	return nil
}

// MatcherVersion is the identifier embedded in every persisted result.
func (v Version) MatcherVersion() string {
	return v.ModelName + "@" + v.Version
}

// AccuracyMetrics is a running aggregate of recruiter-confirmed outcomes.
type AccuracyMetrics struct {
	Samples        int     `json:"samples"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	Precision      float64 `json:"precision"`
}

// Outcome is one confirmed prediction result folded into the metrics.
type Outcome struct {
	Correct bool
}

func (m AccuracyMetrics) Fold(o Outcome) AccuracyMetrics {
	m.Samples++
	if o.Correct {
		m.TruePositives++
	} else {
		m.FalsePositives++
	}
	if denom := m.TruePositives + m.FalsePositives; denom > 0 {
		m.Precision = float64(m.TruePositives) / float64(denom)
	}
	return m
}

// DefaultThresholds mirrors the baseline recommendation policy: all signals
// passing plus a high overall score is a strong match, one passing signal is
// still enough for weak_match.
func DefaultThresholds() match.Thresholds {
	return match.Thresholds{
		KeywordMin:       0.5,
		TFIDFMin:         0.3,
		VectorMin:        0.4,
		Strong:           0.75,
		Possible:         0.55,
		Weak:             0.35,
		MinSignalsPassed: 1,
	}
}

// DefaultWeights is the baseline signal blend.
func DefaultWeights() match.Weights {
	return match.Weights{Keyword: 0.4, TFIDF: 0.3, Vector: 0.3}
}
