package match

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation tiers, ordered from best to worst.
const (
	RecommendationStrong   = "strong_match"
	RecommendationPossible = "possible_match"
	RecommendationWeak     = "weak_match"
	RecommendationReject   = "reject"
)

// Signal names used in diagnostics and logs.
const (
	SignalKeyword = "keyword"
	SignalTFIDF   = "tfidf"
	SignalVector  = "vector"
)

// SignalScores are the three independent signal outputs, each in [0,1].
type SignalScores struct {
	Keyword float64
	TFIDF   float64
	Vector  float64
}

// Result is the persisted audit record for one scored (resume, vacancy)
// pair. Once finalized it is immutable; appeals record adjustments as an
// addendum, never by rewriting these fields.
type Result struct {
	ID        uuid.UUID
	ResumeID  uuid.UUID
	VacancyID uuid.UUID

	KeywordScore float64
	TFIDFScore   float64
	VectorScore  float64

	KeywordPassed bool
	TFIDFPassed   bool
	VectorPassed  bool

	OverallScore   float64
	Recommendation string

	MatchedSkills    []string
	MissingSkills    []string
	AdditionalSkills []string
	MatchedTerms     []string
	MissingTerms     []string

	// VectorSimilarity is the raw cosine value before clamping, kept for
	// diagnostics.
	VectorSimilarity   float64
	ExperienceVerified bool

	// DegradedSignals lists signals that fell back to their sentinel score
	// because their input was absent or malformed.
	DegradedSignals []string

	MatcherVersion string
	CreatedAt      time.Time
}

func (r Result) Signals() SignalScores {
	return SignalScores{Keyword: r.KeywordScore, TFIDF: r.TFIDFScore, Vector: r.VectorScore}
}
