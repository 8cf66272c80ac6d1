package nutrition

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A nil cache behaves as a permanent miss, so the decorator must always
// delegate and still return the inner result.
func TestCachedClient_NilCachePassthrough(t *testing.T) {
	client := NewCachedClient(StubClient{}, nil)

	nutrients, err := client.Lookup(context.Background(), "avocado", 150)

	assert.NoError(t, err)
	assert.Equal(t, Nutrients{Kcal: 150, CarbG: 7, FatG: 75, ProteinG: 15}, nutrients)
}

func TestCachedClient_CacheKey(t *testing.T) {
	client := NewCachedClient(StubClient{}, nil)
	assert.Equal(t, "nutrition:avocado:150", client.cacheKey("avocado", 150))
}
