package repository

import (
	"context"
	"time"
)

// CacheStore abstracts the ephemeral cache in front of aggregate queries.
// Implementations: Redis (production) or in-memory (local dev / tests).
// Get returns nil with no error on a miss.
type CacheStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
