package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one canonical skill in the global industry taxonomy. Variants map
// many-to-one onto Canonical; within an (industry, context) pair canonical
// names are unique.
type Entry struct {
	ID        uuid.UUID
	Industry  string
	Canonical string
	Context   string
	Variants  []string
	Active    bool
}

// Synonym set review states.
const (
	SynonymStatusPending   = "pending"
	SynonymStatusActive    = "active"
	SynonymStatusDiscarded = "discarded"
)

// SynonymSet is an organization-scoped override layered on top of the global
// taxonomy. Pending sets come out of the feedback aggregator and stay
// inactive until a reviewer promotes them.
type SynonymSet struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Industry       string
	Canonical      string
	Context        string
	Synonyms       []string
	Status         string
	Support        int
	CreatedAt      time.Time
	ReviewedAt     *time.Time
}

func (s SynonymSet) IsActive() bool {
	return s.Status == SynonymStatusActive
}
