package cache

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIsStableForEquivalentQueries(t *testing.T) {
	a := url.Values{}
	a.Set("type", "House")
	a.Set("bedrooms", "3")

	b := url.Values{}
	b.Set("bedrooms", "3")
	b.Set("type", "House")

	// url.Values.Encode sorts keys, so parameter order cannot split the cache
	assert.Equal(t, Key(a), Key(b))
	assert.True(t, strings.HasPrefix(Key(a), "properties:"))
}

func TestKeyDiffersPerQuery(t *testing.T) {
	a := url.Values{"type": {"House"}}
	b := url.Values{"type": {"Villa"}}
	assert.NotEqual(t, Key(a), Key(b))
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *ListingCache
	ctx := context.Background()

	payload, ok := c.Get(ctx, "properties:x")
	assert.False(t, ok)
	assert.Nil(t, payload)

	assert.NotPanics(t, func() {
		c.Set(ctx, "properties:x", []byte("{}"))
		c.Invalidate(ctx)
	})
	assert.NoError(t, c.Close())
}
