package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: try the cache, fall back to the
// loader on a miss, and populate the cache with the loaded value. dest must be
// a pointer; the loader is expected to fill it. Cache failures are swallowed;
// the loader result is authoritative.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry: drop it and reload.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis unavailable; serve from the loader.
			return load()
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if encoded, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, encoded, ttl)
		}
	}
	return nil
}
