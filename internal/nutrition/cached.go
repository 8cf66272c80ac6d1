package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ketotrack/internal/cache"
)

const lookupCacheTTL = 24 * time.Hour

// CachedClient wraps a Client with a Redis cache-aside keyed by
// (name, grams). Nutrition facts for a fixed weight do not change, so a
// long TTL is safe.
type CachedClient struct {
	inner Client
	cache *cache.Client
}

// NewCachedClient decorates a client with caching.
func NewCachedClient(inner Client, cache *cache.Client) *CachedClient {
	return &CachedClient{inner: inner, cache: cache}
}

func (c *CachedClient) cacheKey(name string, grams uint) string {
	return fmt.Sprintf("nutrition:%s:%d", name, grams)
}

// Lookup returns the cached macros when present, otherwise delegates and
// stores the result.
func (c *CachedClient) Lookup(ctx context.Context, name string, grams uint) (Nutrients, error) {
	key := c.cacheKey(name, grams)
	if data, _ := c.cache.Get(ctx, key); data != nil {
		var cached Nutrients
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := c.inner.Lookup(ctx, name, grams)
	if err != nil {
		return Nutrients{}, err
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = c.cache.Set(ctx, key, payload, lookupCacheTTL)
	}
	return result, nil
}
