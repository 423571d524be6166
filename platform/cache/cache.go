// Package cache provides a small TTL key/value cache with in-memory and
// Redis backends.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values for a bounded time.
type Cache interface {
	// Get returns the value and true on a hit, nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A non-positive ttl stores nothing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
}
