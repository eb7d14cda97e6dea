package match

import (
	"errors"
	"fmt"
	"math"
)

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 1e-6

var ErrInvalidWeights = errors.New("signal weights must sum to 1.0")

// Weights blends the three signals into the overall score.
type Weights struct {
	Keyword float64 `json:"keyword"`
	TFIDF   float64 `json:"tfidf"`
	Vector  float64 `json:"vector"`
}

func (w Weights) Validate() error {
	if w.Keyword < 0 || w.TFIDF < 0 || w.Vector < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
	}
	sum := w.Keyword + w.TFIDF + w.Vector
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: got %.8f", ErrInvalidWeights, sum)
	}
	return nil
}

// Thresholds make the whole recommendation policy data-driven: per-signal
// pass minimums, overall-score cutoffs per tier and how many signals must
// pass to still qualify for weak_match.
type Thresholds struct {
	KeywordMin float64 `json:"keyword_min"`
	TFIDFMin   float64 `json:"tfidf_min"`
	VectorMin  float64 `json:"vector_min"`

	Strong   float64 `json:"strong"`
	Possible float64 `json:"possible"`
	Weak     float64 `json:"weak"`

	MinSignalsPassed int `json:"min_signals_passed"`
}

func (t Thresholds) Validate() error {
	for _, v := range []float64{t.KeywordMin, t.TFIDFMin, t.VectorMin, t.Strong, t.Possible, t.Weak} {
		if v < 0 || v > 1 {
			return fmt.Errorf("threshold %v out of [0,1]", v)
		}
	}
	if t.Strong < t.Possible || t.Possible < t.Weak {
		return fmt.Errorf("tier thresholds must be ordered strong >= possible >= weak")
	}
	if t.MinSignalsPassed < 0 || t.MinSignalsPassed > 3 {
		return fmt.Errorf("min_signals_passed must be in 0..3")
	}
	return nil
}

// Outcome is the combiner's verdict for one pair.
type Outcome struct {
	OverallScore   float64
	KeywordPassed  bool
	TFIDFPassed    bool
	VectorPassed   bool
	Recommendation string
}

// Combine blends the signal scores per the version's weights and walks the
// recommendation table top-down, first match wins. It is a pure function:
// identical inputs always produce identical outcomes.
func Combine(s SignalScores, w Weights, t Thresholds) Outcome {
	out := Outcome{
		OverallScore:  w.Keyword*s.Keyword + w.TFIDF*s.TFIDF + w.Vector*s.Vector,
		KeywordPassed: s.Keyword >= t.KeywordMin,
		TFIDFPassed:   s.TFIDF >= t.TFIDFMin,
		VectorPassed:  s.Vector >= t.VectorMin,
	}

	passed := 0
	for _, ok := range []bool{out.KeywordPassed, out.TFIDFPassed, out.VectorPassed} {
		if ok {
			passed++
		}
	}

	switch {
	case passed == 3 && out.OverallScore >= t.Strong:
		out.Recommendation = RecommendationStrong
	case passed == 3 && out.OverallScore >= t.Possible:
		out.Recommendation = RecommendationPossible
	case passed >= t.MinSignalsPassed && out.OverallScore >= t.Weak:
		out.Recommendation = RecommendationWeak
	default:
		out.Recommendation = RecommendationReject
	}
	return out
}
