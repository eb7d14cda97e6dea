package dto

import (
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/feedback"
	"resume-match/internal/domain/taxonomy"
)

type SubmitFeedbackRequest struct {
	MatchResultID  uuid.UUID `json:"match_result_id" validate:"required"`
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Industry       string    `json:"industry"`
	RecruiterID    uuid.UUID `json:"recruiter_id"`
	SkillName      string    `json:"skill_name" validate:"required"`
	Correct        bool      `json:"correct"`
	ActualSkill    string    `json:"actual_skill"`
}

func (r SubmitFeedbackRequest) ToFeedback() feedback.Feedback {
	return feedback.Feedback{
		MatchResultID:  r.MatchResultID,
		OrganizationID: r.OrganizationID,
		Industry:       r.Industry,
		RecruiterID:    r.RecruiterID,
		SkillName:      r.SkillName,
		Correct:        r.Correct,
		ActualSkill:    r.ActualSkill,
	}
}

type FeedbackResponse struct {
	ID            uuid.UUID `json:"id"`
	MatchResultID uuid.UUID `json:"match_result_id"`
	SkillName     string    `json:"skill_name"`
	Correct       bool      `json:"correct"`
	ActualSkill   string    `json:"actual_skill,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewFeedbackResponse(f feedback.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:            f.ID,
		MatchResultID: f.MatchResultID,
		SkillName:     f.SkillName,
		Correct:       f.Correct,
		ActualSkill:   f.ActualSkill,
		CreatedAt:     f.CreatedAt,
	}
}

type AggregationReportResponse struct {
	Consumed  int `json:"consumed"`
	Skipped   int `json:"skipped"`
	Proposals int `json:"proposals"`
}

type SynonymSetResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	Industry       string     `json:"industry"`
	Canonical      string     `json:"canonical"`
	Context        string     `json:"context,omitempty"`
	Synonyms       []string   `json:"synonyms"`
	Status         string     `json:"status"`
	Support        int        `json:"support"`
	CreatedAt      time.Time  `json:"created_at"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
}

func NewSynonymSetResponse(s taxonomy.SynonymSet) SynonymSetResponse {
	return SynonymSetResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Industry:       s.Industry,
		Canonical:      s.Canonical,
		Context:        s.Context,
		Synonyms:       emptyIfNil(s.Synonyms),
		Status:         s.Status,
		Support:        s.Support,
		CreatedAt:      s.CreatedAt,
		ReviewedAt:     s.ReviewedAt,
	}
}

type ReviewSynonymRequest struct {
	Verdict string `json:"verdict" validate:"required,oneof=promote discard"`
}
