package feedback

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func correctionRow(org, recruiter uuid.UUID, skill, actual string) Feedback {
	return Feedback{
		ID:             uuid.New(),
		MatchResultID:  uuid.New(),
		OrganizationID: org,
		Industry:       "software",
		RecruiterID:    recruiter,
		SkillName:      skill,
		Correct:        false,
		ActualSkill:    actual,
	}
}

func TestAggregate_ProposalAtThreshold(t *testing.T) {
	org := uuid.New()
	rows := make([]Feedback, 0, 6)
	for i := 0; i < 6; i++ {
		rows = append(rows, correctionRow(org, uuid.New(), "postgres", "PostgreSQL"))
	}

	proposals, consumed, skipped := Aggregate(rows, 5)

	require.Len(t, proposals, 1)
	assert.Equal(t, org, proposals[0].OrganizationID)
	assert.Equal(t, "PostgreSQL", proposals[0].Canonical)
	assert.Equal(t, "postgres", proposals[0].Synonym)
	assert.Equal(t, 6, proposals[0].Support)
	assert.Len(t, consumed, 6)
	assert.Zero(t, skipped)
}

func TestAggregate_BelowThresholdStillConsumes(t *testing.T) {
	org := uuid.New()
	rows := []Feedback{
		correctionRow(org, uuid.New(), "postgres", "PostgreSQL"),
		correctionRow(org, uuid.New(), "postgres", "PostgreSQL"),
	}

	proposals, consumed, _ := Aggregate(rows, 5)
	assert.Empty(t, proposals)
	assert.Len(t, consumed, 2)
}

func TestAggregate_SupportCountsDistinctRecruiters(t *testing.T) {
	org := uuid.New()
	recruiter := uuid.New()
	rows := make([]Feedback, 0, 5)
	// One loud recruiter repeating the same correction is one vote.
	for i := 0; i < 5; i++ {
		rows = append(rows, correctionRow(org, recruiter, "postgres", "PostgreSQL"))
	}

	proposals, _, _ := Aggregate(rows, 2)
	assert.Empty(t, proposals)
}

func TestAggregate_GroupsByOrganization(t *testing.T) {
	orgA, orgB := uuid.New(), uuid.New()
	rows := []Feedback{
		correctionRow(orgA, uuid.New(), "postgres", "PostgreSQL"),
		correctionRow(orgA, uuid.New(), "postgres", "PostgreSQL"),
		correctionRow(orgB, uuid.New(), "postgres", "PostgreSQL"),
	}

	proposals, _, _ := Aggregate(rows, 2)
	require.Len(t, proposals, 1)
	assert.Equal(t, orgA, proposals[0].OrganizationID)
}

func TestAggregate_ConfirmationsCarryNoProposal(t *testing.T) {
	org := uuid.New()
	rows := []Feedback{
		{
			ID:             uuid.New(),
			OrganizationID: org,
			RecruiterID:    uuid.New(),
			SkillName:      "Go",
			Correct:        true,
		},
	}

	proposals, consumed, skipped := Aggregate(rows, 1)
	assert.Empty(t, proposals)
	assert.Len(t, consumed, 1)
	assert.Zero(t, skipped)
}

func TestAggregate_MalformedRowsConsumedAndCounted(t *testing.T) {
	rows := []Feedback{
		{ID: uuid.New(), SkillName: "go"},                                       // missing org
		{ID: uuid.New(), OrganizationID: uuid.New()},                            // missing skill
		correctionRow(uuid.New(), uuid.New(), "PostgreSQL", "postgresql"),       // correction equals skill
		correctionRow(uuid.New(), uuid.New(), "postgres", "PostgreSQL"),         // fine
	}

	proposals, consumed, skipped := Aggregate(rows, 1)
	assert.Equal(t, 3, skipped)
	assert.Len(t, consumed, 4)
	assert.Len(t, proposals, 1)
}

func TestAggregate_SkipsProcessedRows(t *testing.T) {
	row := correctionRow(uuid.New(), uuid.New(), "postgres", "PostgreSQL")
	row.Processed = true

	proposals, consumed, skipped := Aggregate([]Feedback{row}, 1)
	assert.Empty(t, proposals)
	assert.Empty(t, consumed)
	assert.Zero(t, skipped)
}

func TestMalformed(t *testing.T) {
	assert.True(t, Feedback{}.Malformed())
	assert.False(t, correctionRow(uuid.New(), uuid.New(), "postgres", "PostgreSQL").Malformed())
	assert.True(t, correctionRow(uuid.New(), uuid.New(), "Postgres", " postgres ").Malformed())
}
