package cache

import (
	"context"
	"time"
)

// Cache fronts leaderboard reads. The board is re-sorted and re-saved on
// every mutating request, so reads get a short-TTL cached copy that is
// invalidated whenever the board changes. Swapping between the memory
// implementation (development) and Redis (production) is a config choice.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}

// CacheError is a sentinel error type for cache failures.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
