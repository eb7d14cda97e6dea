package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"resume-match/internal/domain/feedback"

	"github.com/google/uuid"
)

type FeedbackStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]feedback.Feedback
}

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{rows: make(map[uuid.UUID]feedback.Feedback)}
}

func (s *FeedbackStore) Create(_ context.Context, f feedback.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	s.rows[f.ID] = f
	return nil
}

func (s *FeedbackStore) ListUnprocessed(_ context.Context, limit int) ([]feedback.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]feedback.Feedback, 0)
	for _, f := range s.rows {
		if !f.Processed {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FeedbackStore) MarkProcessed(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if f, ok := s.rows[id]; ok && !f.Processed {
			f.Processed = true
			s.rows[id] = f
		}
	}
	return nil
}
