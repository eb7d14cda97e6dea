package memory

import (
	"context"
	"sync"
	"time"

	"resume-match/internal/domain/taxonomy"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type TaxonomyStore struct {
	mu      sync.RWMutex
	entries []taxonomy.Entry
}

func NewTaxonomyStore() *TaxonomyStore {
	return &TaxonomyStore{}
}

func (s *TaxonomyStore) Create(_ context.Context, e taxonomy.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Industry is a lookup key, stored and compared normalized.
	e.Industry = taxonomy.Normalize(e.Industry)
	for _, existing := range s.entries {
		if existing.Industry == e.Industry && existing.Context == e.Context &&
			taxonomy.Normalize(existing.Canonical) == taxonomy.Normalize(e.Canonical) {
			return repository.ErrDuplicate
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *TaxonomyStore) ListActiveByIndustry(_ context.Context, industry string) ([]taxonomy.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]taxonomy.Entry, 0)
	key := taxonomy.Normalize(industry)
	for _, e := range s.entries {
		if e.Active && e.Industry == key {
			out = append(out, e)
		}
	}
	return out, nil
}

// SynonymStore implements SynonymRepository in memory, including the
// merge-on-repropose behavior for pending candidates.
type SynonymStore struct {
	mu   sync.RWMutex
	sets map[uuid.UUID]taxonomy.SynonymSet
}

func NewSynonymStore() *SynonymStore {
	return &SynonymStore{sets: make(map[uuid.UUID]taxonomy.SynonymSet)}
}

func (s *SynonymStore) CreatePending(_ context.Context, set taxonomy.SynonymSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set.Industry = taxonomy.Normalize(set.Industry)
	for id, existing := range s.sets {
		if existing.Status != taxonomy.SynonymStatusPending {
			continue
		}
		if existing.OrganizationID == set.OrganizationID &&
			existing.Industry == set.Industry &&
			existing.Context == set.Context &&
			taxonomy.Normalize(existing.Canonical) == taxonomy.Normalize(set.Canonical) {
			existing.Synonyms = mergeSynonyms(existing.Synonyms, set.Synonyms)
			existing.Support += set.Support
			s.sets[id] = existing
			return nil
		}
	}

	if set.ID == uuid.Nil {
		set.ID = uuid.New()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}
	set.Status = taxonomy.SynonymStatusPending
	s.sets[set.ID] = set
	return nil
}

func (s *SynonymStore) ListActive(_ context.Context, organizationID uuid.UUID, industry string) ([]taxonomy.SynonymSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]taxonomy.SynonymSet, 0)
	key := taxonomy.Normalize(industry)
	for _, set := range s.sets {
		if set.Status == taxonomy.SynonymStatusActive &&
			set.OrganizationID == organizationID && set.Industry == key {
			out = append(out, set)
		}
	}
	return out, nil
}

func (s *SynonymStore) ListPending(_ context.Context) ([]taxonomy.SynonymSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]taxonomy.SynonymSet, 0)
	for _, set := range s.sets {
		if set.Status == taxonomy.SynonymStatusPending {
			out = append(out, set)
		}
	}
	return out, nil
}

func (s *SynonymStore) FindByID(_ context.Context, id uuid.UUID) (taxonomy.SynonymSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return taxonomy.SynonymSet{}, repository.ErrNotFound
	}
	return set, nil
}

func (s *SynonymStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	set.Status = status
	set.ReviewedAt = &now
	s.sets[id] = set
	return nil
}

func mergeSynonyms(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		key := taxonomy.Normalize(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
