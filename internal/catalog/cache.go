package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoises catalog response payloads in Redis. The menu ships inside
// the binary, so the cache is not about load: it keeps payloads identical
// across instances while a rolling deploy carries two menu revisions.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key composes a namespaced cache key from its parts.
func Key(parts ...string) string {
	return "catalog:" + strings.Join(parts, ":")
}

// FetchJSON returns the cached value for key, populating it from loader on a
// miss. Redis failures are not fatal: the loader result is served uncached.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func() (interface{}, error)) error {
	if c != nil && c.client != nil {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
		}
	}

	value, err := loader()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c != nil && c.client != nil {
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return json.Unmarshal(raw, dest)
}
