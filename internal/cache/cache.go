// Package cache provides a TTL key/value store with prefix-scoped bulk
// invalidation, wrapping arbitrary computations. Two interchangeable
// backends exist behind the same contract: an in-process store for
// development and tests, and Redis for production.
package cache

import (
	"context"
	"time"
)

// Store is the cache contract. GetOrCompute returns the live payload for
// key if one exists, otherwise runs compute and stores its result for
// ttl. Concurrent calls for the same key are collapsed within a process
// so a cold key does not trigger a recompute storm.
type Store interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func(ctx context.Context) ([]byte, error)) ([]byte, error)
	InvalidatePrefix(ctx context.Context, prefix string) (int, error)
	InvalidateAll(ctx context.Context) error
}
