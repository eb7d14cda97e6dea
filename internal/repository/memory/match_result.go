package memory

import (
	"context"
	"sync"
	"time"

	"resume-match/internal/domain/match"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type pairKey struct {
	resume  uuid.UUID
	vacancy uuid.UUID
}

// MatchResultStore is the in-memory MatchResultRepository used by unit tests
// and DB-less local runs.
type MatchResultStore struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]match.Result
	byPair map[pairKey]uuid.UUID
}

func NewMatchResultStore() *MatchResultStore {
	return &MatchResultStore{
		byID:   make(map[uuid.UUID]match.Result),
		byPair: make(map[pairKey]uuid.UUID),
	}
}

func (s *MatchResultStore) Save(_ context.Context, res match.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{resume: res.ResumeID, vacancy: res.VacancyID}
	if id, ok := s.byPair[key]; ok {
		res.ID = id
	} else if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	s.byID[res.ID] = res
	s.byPair[key] = res.ID
	return nil
}

func (s *MatchResultStore) FindByID(_ context.Context, id uuid.UUID) (match.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.byID[id]
	if !ok {
		return match.Result{}, repository.ErrNotFound
	}
	return res, nil
}

func (s *MatchResultStore) FindByPair(_ context.Context, resumeID, vacancyID uuid.UUID) (match.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPair[pairKey{resume: resumeID, vacancy: vacancyID}]
	if !ok {
		return match.Result{}, repository.ErrNotFound
	}
	return s.byID[id], nil
}
