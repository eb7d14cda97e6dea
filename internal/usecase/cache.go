package usecase

import (
	"context"
	"time"
)

// Cache is the subset of the redis cache the usecases rely on. A nil-safe
// no-op implementation is acceptable; every read tolerates a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
