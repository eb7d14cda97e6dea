package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-match/internal/domain/model"
	"resume-match/internal/repository"

	"github.com/google/uuid"
)

type nameVersion struct {
	name    string
	version string
}

// ModelVersionStore implements ModelVersionRepository with the same
// compare-and-swap activation semantics as the Postgres implementation.
type ModelVersionStore struct {
	mu       sync.RWMutex
	versions map[nameVersion]model.Version
}

func NewModelVersionStore() *ModelVersionStore {
	return &ModelVersionStore{versions: make(map[nameVersion]model.Version)}
}

func (s *ModelVersionStore) Create(_ context.Context, v model.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameVersion{name: v.ModelName, version: v.Version}
	if _, ok := s.versions[key]; ok {
		return repository.ErrDuplicate
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	s.versions[key] = v
	return nil
}

func (s *ModelVersionStore) Find(_ context.Context, modelName, version string) (model.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[nameVersion{name: modelName, version: version}]
	if !ok {
		return model.Version{}, repository.ErrNotFound
	}
	return v, nil
}

func (s *ModelVersionStore) FindActive(_ context.Context, modelName string) (model.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.versions {
		if v.ModelName == modelName && v.IsActive {
			return v, nil
		}
	}
	return model.Version{}, repository.ErrNotFound
}

func (s *ModelVersionStore) ListByName(_ context.Context, modelName string) ([]model.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Version, 0)
	for _, v := range s.versions {
		if v.ModelName == modelName {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *ModelVersionStore) ListExperiments(_ context.Context, modelName string) ([]model.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Version, 0)
	for _, v := range s.versions {
		if v.ModelName == modelName && v.IsExperiment && !v.IsActive {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (s *ModelVersionStore) Activate(_ context.Context, modelName, version, expectedActive string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := ""
	var currentKey nameVersion
	for key, v := range s.versions {
		if v.ModelName == modelName && v.IsActive {
			current = v.Version
			currentKey = key
			break
		}
	}
	if current != expectedActive {
		return repository.ErrActivationConflict
	}

	target, ok := s.versions[nameVersion{name: modelName, version: version}]
	if !ok {
		return repository.ErrNotFound
	}

	if current != "" {
		prev := s.versions[currentKey]
		prev.IsActive = false
		s.versions[currentKey] = prev
	}
	target.IsActive = true
	s.versions[nameVersion{name: modelName, version: version}] = target
	return nil
}

func (s *ModelVersionStore) UpdateAccuracy(_ context.Context, modelName, version string, metrics model.AccuracyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameVersion{name: modelName, version: version}
	v, ok := s.versions[key]
	if !ok {
		return repository.ErrNotFound
	}
	v.Accuracy = metrics
	s.versions[key] = v
	return nil
}
