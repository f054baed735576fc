package cache

import (
	"context"
	"fmt"

	"github.com/rinkstats/streaks/internal/logging"
)

// GetOrCreate returns the cached value for key, creating it if missing.
// Returns data, created, error
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	logger := logging.FromContext(ctx)

	// A claimed entry that never gets set is removed so other callers can try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			var empty T
			return empty, false, fmt.Errorf("cancelled while waiting for cache: %w", err)
		}

		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true
			logger.InfoContext(ctx, "Looking up cache", "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, true, nil
		}

		if result.valid {
			logger.InfoContext(ctx, "Looking up cache", "cache", "hit")
			return result.data, false, nil
		}

		logger.InfoContext(ctx, "Waiting for cache")
		cache.wait()
	}
}
