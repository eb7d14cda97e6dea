package dto

import (
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/appeal"
)

type FileAppealRequest struct {
	MatchResultID uuid.UUID `json:"match_result_id" validate:"required"`
	CandidateID   uuid.UUID `json:"candidate_id" validate:"required"`
	Reason        string    `json:"reason" validate:"required"`
}

type AssignAppealRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id" validate:"required"`
}

type ResolveAppealRequest struct {
	Verdict       string  `json:"verdict" validate:"required,oneof=resolved rejected"`
	AdjustedScore float64 `json:"adjusted_score" validate:"gte=0,lte=1"`
	Notes         string  `json:"notes" validate:"required"`
}

type AppealResponse struct {
	ID            uuid.UUID  `json:"id"`
	MatchResultID uuid.UUID  `json:"match_result_id"`
	CandidateID   uuid.UUID  `json:"candidate_id"`
	ReviewerID    *uuid.UUID `json:"reviewer_id,omitempty"`

	Status        string   `json:"status"`
	Reason        string   `json:"reason"`
	OriginalScore float64  `json:"original_score"`
	AdjustedScore *float64 `json:"adjusted_score,omitempty"`
	Notes         string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAppealResponse(a appeal.Appeal) AppealResponse {
	return AppealResponse{
		ID:            a.ID,
		MatchResultID: a.MatchResultID,
		CandidateID:   a.CandidateID,
		ReviewerID:    a.ReviewerID,
		Status:        a.Status,
		Reason:        a.Reason,
		OriginalScore: a.OriginalScore,
		AdjustedScore: a.AdjustedScore,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
