// Package cache provides a simple key-value cache with TTL eviction,
// backed by Redis in production and an in-memory store for tests and
// single-node deployments.
package cache

import (
	"context"
	"time"
)

// Store is a key-value cache with per-entry TTL.
type Store interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key; absent keys are not an error.
	Delete(ctx context.Context, key string) error
}
