package taxonomy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	entries := []Entry{
		{
			ID:        uuid.New(),
			Industry:  "software",
			Canonical: "PostgreSQL",
			Variants:  []string{"postgres", "psql", "postgre sql"},
			Active:    true,
		},
		{
			ID:        uuid.New(),
			Industry:  "software",
			Canonical: "Kubernetes",
			Variants:  []string{"k8s"},
			Active:    true,
		},
		{
			ID:        uuid.New(),
			Industry:  "software",
			Canonical: "Terraform",
			Variants:  []string{"tf"},
			Active:    false,
		},
	}
	overrides := []SynonymSet{
		{
			ID:             uuid.New(),
			OrganizationID: uuid.New(),
			Industry:       "software",
			Canonical:      "Kubernetes",
			Synonyms:       []string{"container orchestration"},
			Status:         SynonymStatusActive,
		},
		{
			ID:             uuid.New(),
			OrganizationID: uuid.New(),
			Industry:       "software",
			Canonical:      "Go",
			Synonyms:       []string{"golang"},
			Status:         SynonymStatusPending,
		},
	}
	return BuildSnapshot(entries, overrides)
}

func TestSnapshot_Resolve_ChainOrder(t *testing.T) {
	s := testSnapshot()

	tests := []struct {
		name      string
		raw       string
		canonical string
		source    Source
		resolved  bool
	}{
		{"org synonym wins", "Container Orchestration", "Kubernetes", SourceOrgSynonym, true},
		{"global variant", "psql", "PostgreSQL", SourceVariant, true},
		{"exact canonical, case folded", "postgresql", "PostgreSQL", SourceExact, true},
		{"whitespace collapsed variant", "  Postgre   SQL ", "PostgreSQL", SourceVariant, true},
		{"unknown passes through literally", "Rust", "Rust", SourceLiteral, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := s.Resolve(tt.raw)
			assert.Equal(t, tt.canonical, r.Canonical)
			assert.Equal(t, tt.source, r.Source)
			assert.Equal(t, tt.resolved, r.Canonicalized)
		})
	}
}

func TestSnapshot_Resolve_IgnoresInactiveRows(t *testing.T) {
	s := testSnapshot()

	r := s.Resolve("tf")
	assert.Equal(t, SourceLiteral, r.Source)
	assert.False(t, r.Canonicalized)

	r = s.Resolve("golang")
	assert.Equal(t, SourceLiteral, r.Source)
	assert.Equal(t, "golang", r.Canonical)
}

func TestSnapshot_ResolveSet_DeduplicatesByCanonical(t *testing.T) {
	s := testSnapshot()

	set, resolutions := s.ResolveSet([]string{"postgres", "psql", "PostgreSQL", "k8s"})
	require.Len(t, resolutions, 4)
	require.Len(t, set, 2)
	assert.Equal(t, "PostgreSQL", set["postgresql"])
	assert.Equal(t, "Kubernetes", set["kubernetes"])
}

func TestSnapshot_Resolve_EmptyToken(t *testing.T) {
	s := testSnapshot()

	r := s.Resolve("   ")
	assert.Empty(t, r.Canonical)
	assert.False(t, r.Canonicalized)

	set, _ := s.ResolveSet([]string{"", "  "})
	assert.Empty(t, set)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "postgre sql", Normalize("  Postgre   SQL "))
	assert.Equal(t, "", Normalize("   "))
}
