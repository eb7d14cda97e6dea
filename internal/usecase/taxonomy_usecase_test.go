package usecase

import (
	"context"
	"testing"

	"resume-match/internal/domain/feedback"
	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTaxonomy(t *testing.T) (*Taxonomy, *memory.TaxonomyStore, *memory.SynonymStore) {
	t.Helper()
	entries := memory.NewTaxonomyStore()
	synonyms := memory.NewSynonymStore()
	return NewTaxonomyUsecase(entries, synonyms, nil, 0, nil), entries, synonyms
}

func TestTaxonomy_Snapshot_LayersOrgOverrides(t *testing.T) {
	uc, entries, synonyms := newTestTaxonomy(t)
	org := uuid.New()

	require.NoError(t, entries.Create(context.Background(), taxonomy.Entry{
		Industry:  "software",
		Canonical: "PostgreSQL",
		Variants:  []string{"postgres"},
		Active:    true,
	}))
	require.NoError(t, synonyms.CreatePending(context.Background(), taxonomy.SynonymSet{
		OrganizationID: org,
		Industry:       "software",
		Canonical:      "Kubernetes",
		Synonyms:       []string{"the platform"},
		Support:        5,
	}))

	// Pending overrides are invisible.
	snap, err := uc.Snapshot(context.Background(), "software", org)
	require.NoError(t, err)
	r := snap.Resolve("the platform")
	assert.False(t, r.Canonicalized)

	pending, err := uc.ListPendingCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = uc.ReviewCandidate(context.Background(), pending[0].ID, ReviewPromote)
	require.NoError(t, err)

	snap, err = uc.Snapshot(context.Background(), "software", org)
	require.NoError(t, err)
	r = snap.Resolve("the platform")
	assert.True(t, r.Canonicalized)
	assert.Equal(t, "Kubernetes", r.Canonical)
	assert.Equal(t, taxonomy.SourceOrgSynonym, r.Source)

	// Another organization never sees the override.
	other, err := uc.Snapshot(context.Background(), "software", uuid.New())
	require.NoError(t, err)
	assert.False(t, other.Resolve("the platform").Canonicalized)
}

func TestTaxonomy_Snapshot_ImmuneToLaterPromotions(t *testing.T) {
	uc, _, synonyms := newTestTaxonomy(t)
	org := uuid.New()

	snap, err := uc.Snapshot(context.Background(), "software", org)
	require.NoError(t, err)

	require.NoError(t, synonyms.CreatePending(context.Background(), taxonomy.SynonymSet{
		OrganizationID: org,
		Industry:       "software",
		Canonical:      "Go",
		Synonyms:       []string{"golang"},
	}))
	pending, err := synonyms.ListPending(context.Background())
	require.NoError(t, err)
	_, err = uc.ReviewCandidate(context.Background(), pending[0].ID, ReviewPromote)
	require.NoError(t, err)

	// The snapshot handed out earlier still resolves the old way.
	assert.False(t, snap.Resolve("golang").Canonicalized)
}

func TestTaxonomy_ReviewCandidate_Discard(t *testing.T) {
	uc, _, synonyms := newTestTaxonomy(t)
	org := uuid.New()

	require.NoError(t, synonyms.CreatePending(context.Background(), taxonomy.SynonymSet{
		OrganizationID: org,
		Industry:       "software",
		Canonical:      "Go",
		Synonyms:       []string{"golang"},
	}))
	pending, err := synonyms.ListPending(context.Background())
	require.NoError(t, err)

	set, err := uc.ReviewCandidate(context.Background(), pending[0].ID, ReviewDiscard)
	require.NoError(t, err)
	assert.Equal(t, taxonomy.SynonymStatusDiscarded, set.Status)

	// Closed candidates cannot be re-reviewed.
	_, err = uc.ReviewCandidate(context.Background(), pending[0].ID, ReviewPromote)
	assert.ErrorIs(t, err, ErrSynonymAlreadyClosed)

	snap, err := uc.Snapshot(context.Background(), "software", org)
	require.NoError(t, err)
	assert.False(t, snap.Resolve("golang").Canonicalized)
}

func TestTaxonomy_Snapshot_IndustryCasingInsensitive(t *testing.T) {
	entries := memory.NewTaxonomyStore()
	synonyms := memory.NewSynonymStore()
	taxonomies := NewTaxonomyUsecase(entries, synonyms, nil, 0, nil)
	feedbacks := NewFeedbackUsecase(memory.NewFeedbackStore(), synonyms, 5, nil)
	org := uuid.New()

	require.NoError(t, entries.Create(context.Background(), taxonomy.Entry{
		Industry:  "Software",
		Canonical: "PostgreSQL",
		Variants:  []string{"postgres"},
		Active:    true,
	}))

	// Recruiters file corrections under the industry casing their vacancies
	// carry, not a normalized form.
	for i := 0; i < 6; i++ {
		_, err := feedbacks.Submit(context.Background(), feedback.Feedback{
			MatchResultID:  uuid.New(),
			OrganizationID: org,
			Industry:       "Software",
			RecruiterID:    uuid.New(),
			SkillName:      "ReactJS",
			Correct:        false,
			ActualSkill:    "React",
		})
		require.NoError(t, err)
	}
	report, err := feedbacks.RunAggregation(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Proposals)

	pending, err := taxonomies.ListPendingCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	_, err = taxonomies.ReviewCandidate(context.Background(), pending[0].ID, ReviewPromote)
	require.NoError(t, err)

	for _, industry := range []string{"Software", "software", "SOFTWARE"} {
		snap, err := taxonomies.Snapshot(context.Background(), industry, org)
		require.NoError(t, err)

		r := snap.Resolve("ReactJS")
		assert.True(t, r.Canonicalized, "industry %q", industry)
		assert.Equal(t, "React", r.Canonical, "industry %q", industry)

		r = snap.Resolve("postgres")
		assert.Equal(t, "PostgreSQL", r.Canonical, "industry %q", industry)
	}
}

func TestTaxonomy_ReviewCandidate_NotFound(t *testing.T) {
	uc, _, _ := newTestTaxonomy(t)
	_, err := uc.ReviewCandidate(context.Background(), uuid.New(), ReviewPromote)
	assert.ErrorIs(t, err, ErrSynonymNotFound)
}

func TestTaxonomy_RecurringProposalsMergeIntoOneCandidate(t *testing.T) {
	_, _, synonyms := newTestTaxonomy(t)
	org := uuid.New()

	for _, syn := range []string{"postgres", "psql", "postgres"} {
		require.NoError(t, synonyms.CreatePending(context.Background(), taxonomy.SynonymSet{
			OrganizationID: org,
			Industry:       "software",
			Canonical:      "PostgreSQL",
			Synonyms:       []string{syn},
			Support:        3,
		}))
	}

	pending, err := synonyms.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.ElementsMatch(t, []string{"postgres", "psql"}, pending[0].Synonyms)
	assert.Equal(t, 9, pending[0].Support)
}
