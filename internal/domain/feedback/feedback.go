package feedback

import (
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/taxonomy"
)

// Feedback is one recruiter assertion about a skill that appeared in a match
// result. The scoring path never mutates these rows; the aggregator consumes
// them.
type Feedback struct {
	ID             uuid.UUID
	MatchResultID  uuid.UUID
	OrganizationID uuid.UUID
	Industry       string
	RecruiterID    uuid.UUID

	// SkillName is the matched/missing skill the recruiter is asserting
	// about; ActualSkill is the optional correction.
	SkillName   string
	Correct     bool
	ActualSkill string

	Processed bool
	CreatedAt time.Time
}

// Malformed reports whether the row is missing fields required for
// aggregation. Malformed rows are consumed and logged, never fatal.
func (f Feedback) Malformed() bool {
	if f.ID == uuid.Nil || f.OrganizationID == uuid.Nil {
		return true
	}
	if taxonomy.Normalize(f.SkillName) == "" {
		return true
	}
	// A negative assertion without a correction carries no learnable signal
	// but is still well-formed; only a correction equal to the asserted
	// skill is nonsense.
	if f.ActualSkill != "" && taxonomy.Normalize(f.ActualSkill) == taxonomy.Normalize(f.SkillName) {
		return true
	}
	return false
}

// Proposal is a candidate synonym mapping derived from recurring
// corrections. It becomes a pending SynonymSet, never an active one.
type Proposal struct {
	OrganizationID uuid.UUID
	Industry       string
	Canonical      string
	Synonym        string
	Support        int
}

type groupKey struct {
	org       uuid.UUID
	industry  string
	synonym   string
	canonical string
}

// Aggregate groups unprocessed correction rows by (organization, asserted
// skill, corrected skill) and returns the proposals whose support from
// distinct recruiters meets the threshold, the ids of all consumed rows and
// the number of malformed rows skipped.
//
// The function is pure; idempotence comes from callers only feeding it rows
// with Processed == false.
func Aggregate(rows []Feedback, threshold int) (proposals []Proposal, consumed []uuid.UUID, skipped int) {
	if threshold < 1 {
		threshold = 1
	}

	supporters := make(map[groupKey]map[uuid.UUID]bool)
	display := make(map[groupKey][2]string)
	order := make([]groupKey, 0)

	for _, row := range rows {
		if row.Processed {
			continue
		}
		if row.Malformed() {
			skipped++
			if row.ID != uuid.Nil {
				consumed = append(consumed, row.ID)
			}
			continue
		}
		consumed = append(consumed, row.ID)

		// Only disagreements with a correction teach us a synonym.
		if row.Correct || row.ActualSkill == "" {
			continue
		}

		key := groupKey{
			org:       row.OrganizationID,
			industry:  taxonomy.Normalize(row.Industry),
			synonym:   taxonomy.Normalize(row.SkillName),
			canonical: taxonomy.Normalize(row.ActualSkill),
		}
		if supporters[key] == nil {
			supporters[key] = make(map[uuid.UUID]bool)
			display[key] = [2]string{row.ActualSkill, row.SkillName}
			order = append(order, key)
		}
		voter := row.RecruiterID
		if voter == uuid.Nil {
			// Anonymous rows still count, each as its own voice.
			voter = row.ID
		}
		supporters[key][voter] = true
	}

	for _, key := range order {
		support := len(supporters[key])
		if support < threshold {
			continue
		}
		d := display[key]
		proposals = append(proposals, Proposal{
			OrganizationID: key.org,
			Industry:       key.industry,
			Canonical:      d[0],
			Synonym:        d[1],
			Support:        support,
		})
	}
	return proposals, consumed, skipped
}
