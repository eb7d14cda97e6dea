package dto

import (
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/match"
)

type SignalResponse struct {
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
}

type MatchResultResponse struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	VacancyID uuid.UUID `json:"vacancy_id"`

	Keyword SignalResponse `json:"keyword"`
	TFIDF   SignalResponse `json:"tfidf"`
	Vector  SignalResponse `json:"vector"`

	OverallScore   float64 `json:"overall_score"`
	Recommendation string  `json:"recommendation"`

	MatchedSkills    []string `json:"matched_skills"`
	MissingSkills    []string `json:"missing_skills"`
	AdditionalSkills []string `json:"additional_skills"`
	MatchedTerms     []string `json:"matched_terms"`
	MissingTerms     []string `json:"missing_terms"`

	VectorSimilarity   float64 `json:"vector_similarity"`
	ExperienceVerified bool    `json:"experience_verified"`
	DegradedSignals    []string `json:"degraded_signals,omitempty"`

	MatcherVersion string    `json:"matcher_version"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMatchResultResponse(r match.Result) MatchResultResponse {
	return MatchResultResponse{
		ID:        r.ID,
		ResumeID:  r.ResumeID,
		VacancyID: r.VacancyID,

		Keyword: SignalResponse{Score: r.KeywordScore, Passed: r.KeywordPassed},
		TFIDF:   SignalResponse{Score: r.TFIDFScore, Passed: r.TFIDFPassed},
		Vector:  SignalResponse{Score: r.VectorScore, Passed: r.VectorPassed},

		OverallScore:   r.OverallScore,
		Recommendation: r.Recommendation,

		MatchedSkills:    emptyIfNil(r.MatchedSkills),
		MissingSkills:    emptyIfNil(r.MissingSkills),
		AdditionalSkills: emptyIfNil(r.AdditionalSkills),
		MatchedTerms:     emptyIfNil(r.MatchedTerms),
		MissingTerms:     emptyIfNil(r.MissingTerms),

		VectorSimilarity:   r.VectorSimilarity,
		ExperienceVerified: r.ExperienceVerified,
		DegradedSignals:    r.DegradedSignals,

		MatcherVersion: r.MatcherVersion,
		CreatedAt:      r.CreatedAt,
	}
}

type BatchScoreItemResponse struct {
	ResumeID  uuid.UUID            `json:"resume_id"`
	VacancyID uuid.UUID            `json:"vacancy_id"`
	Result    *MatchResultResponse `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
}

type BatchScoreResponse struct {
	Items []BatchScoreItemResponse `json:"items"`
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
