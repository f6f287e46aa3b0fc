package cache

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"
)

// NullCacheValue is a sentinel value to represent null/empty data in cache.
// Caching the absence of data prevents cache penetration.
const NullCacheValue = "$NULL$"

// GetWithCached implements the cache-aside pattern with null value caching.
// It tries the cache first; on a miss it calls fn and stores the result.
// Empty results are cached under a shorter TTL so repeated lookups for
// missing entities do not hit the database every time.
func GetWithCached[T any](
	ctx context.Context,
	cache Cache,
	key string,
	ttl time.Duration,
	emptyTTL time.Duration,
	isEmpty func(T) bool,
	marshal func(T) string,
	unmarshal func(string) (T, error),
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T

	// Try to get from cache first
	if cached, err := cache.Get(ctx, key); err == nil && cached != "" {
		if cached == NullCacheValue {
			return zero, nil
		}
		if result, err := unmarshal(cached); err == nil {
			return result, nil
		}
	}

	// Cache miss: fetch from database
	data, err := fn(ctx)
	if err != nil {
		return zero, err
	}

	if isEmpty(data) {
		_ = cache.Set(ctx, key, NullCacheValue, emptyTTL)
		return zero, nil
	}

	_ = cache.Set(ctx, key, marshal(data), ttl)
	return data, nil
}

// UpdateCached runs the update function and invalidates the cache key,
// forcing a refresh on the next read.
func UpdateCached(
	ctx context.Context,
	cache Cache,
	key string,
	fn func(context.Context) error,
) error {
	if err := fn(ctx); err != nil {
		return err
	}

	_ = cache.Del(ctx, key)
	return nil
}

// JitterTTL subtracts a random amount (up to 10%) from ttl so that keys
// written together do not expire together.
func JitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	maxJitter := int64(ttl / 10)
	if maxJitter <= 0 {
		return ttl
	}
	n, err := rand.Int(rand.Reader, big.NewInt(maxJitter+1))
	if err != nil {
		return ttl
	}
	return ttl - time.Duration(n.Int64())
}
