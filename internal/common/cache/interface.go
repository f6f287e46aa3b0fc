package cache

import (
	"context"
	"time"
)

// Cache defines the unified interface for cache operations.
// This abstraction allows switching between different cache implementations
// (Redis, local memory) without changing repository code.
type Cache interface {
	// Get retrieves the value for key. Returns "" with a nil error on miss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX stores value only if key does not exist. Returns true if stored.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Del removes the given keys.
	Del(ctx context.Context, keys ...string) error

	// Exists returns how many of the given keys exist.
	Exists(ctx context.Context, keys ...string) (int64, error)

	// Expire resets the TTL of key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining TTL of key.
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Ping verifies the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
