package memory

import (
	"context"
	"sort"
	"sync"

	"resume-match/internal/domain/appeal"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type AppealStore struct {
	mu      sync.RWMutex
	appeals map[uuid.UUID]appeal.Appeal
}

func NewAppealStore() *AppealStore {
	return &AppealStore{appeals: make(map[uuid.UUID]appeal.Appeal)}
}

func (s *AppealStore) Create(_ context.Context, a appeal.Appeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.appeals {
		if existing.MatchResultID == a.MatchResultID && existing.IsOpen() {
			return repository.ErrOpenAppealExists
		}
	}
	s.appeals[a.ID] = a
	return nil
}

func (s *AppealStore) FindByID(_ context.Context, id uuid.UUID) (appeal.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appeals[id]
	if !ok {
		return appeal.Appeal{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *AppealStore) Update(_ context.Context, a appeal.Appeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.appeals[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// Mirror the Postgres column list: original_score never changes.
	a.OriginalScore = existing.OriginalScore
	a.CreatedAt = existing.CreatedAt
	s.appeals[a.ID] = a
	return nil
}

func (s *AppealStore) ListByMatchResult(_ context.Context, matchResultID uuid.UUID) ([]appeal.Appeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]appeal.Appeal, 0)
	for _, a := range s.appeals {
		if a.MatchResultID == matchResultID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
