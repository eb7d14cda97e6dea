package appeal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Appeal states. The only legal walk is
// pending -> under_review -> {resolved, rejected}.
const (
	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusResolved    = "resolved"
	StatusRejected    = "rejected"
)

var (
	ErrInvalidTransition = errors.New("invalid appeal state transition")
	ErrNotesRequired     = errors.New("resolution notes are required")
	ErrScoreOutOfRange   = errors.New("adjusted score must be in [0,1]")
)

// Appeal is a candidate challenge to a persisted match result.
// OriginalScore is copied at creation and never changes afterwards, even if
// the underlying result were rescored; resolution records AdjustedScore as an
// addendum without touching the result row.
type Appeal struct {
	ID            uuid.UUID
	MatchResultID uuid.UUID
	CandidateID   uuid.UUID
	ReviewerID    *uuid.UUID

	Status        string
	Reason        string
	OriginalScore float64
	AdjustedScore *float64
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New files a pending appeal, freezing the automated score as it stands.
func New(matchResultID, candidateID uuid.UUID, originalScore float64, reason string) Appeal {
	now := time.Now().UTC()
	return Appeal{
		ID:            uuid.New(),
		MatchResultID: matchResultID,
		CandidateID:   candidateID,
		Status:        StatusPending,
		Reason:        reason,
		OriginalScore: originalScore,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (a Appeal) IsOpen() bool {
	return a.Status == StatusPending || a.Status == StatusUnderReview
}

// Assign moves a pending appeal under review.
func (a *Appeal) Assign(reviewerID uuid.UUID) error {
	if a.Status != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, StatusUnderReview)
	}
	a.ReviewerID = &reviewerID
	a.Status = StatusUnderReview
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Resolve closes the appeal with an overriding score. Notes are mandatory.
func (a *Appeal) Resolve(adjustedScore float64, notes string) error {
	if a.Status != StatusUnderReview {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, StatusResolved)
	}
	if notes == "" {
		return ErrNotesRequired
	}
	if adjustedScore < 0 || adjustedScore > 1 {
		return ErrScoreOutOfRange
	}
	a.AdjustedScore = &adjustedScore
	a.Notes = notes
	a.Status = StatusResolved
	a.UpdatedAt = time.Now().UTC()
	return nil
}

// Reject closes the appeal without an adjustment. Notes are mandatory.
func (a *Appeal) Reject(notes string) error {
	if a.Status != StatusUnderReview {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, StatusRejected)
	}
	if notes == "" {
		return ErrNotesRequired
	}
	a.Notes = notes
	a.Status = StatusRejected
	a.UpdatedAt = time.Now().UTC()
	return nil
}
