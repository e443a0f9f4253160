package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const listingKeyPrefix = "properties:"

// ListingCache caches serialized property list/search responses in Redis.
// A nil *ListingCache is a valid no-op cache, so the service degrades to
// the database when Redis is disabled or unreachable.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewListingCache connects to Redis and returns the cache. A connection
// failure is reported but callers may choose to continue without caching.
func NewListingCache(addr, password string, db int, ttl time.Duration, logger zerolog.Logger) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &ListingCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Key derives a cache key from normalized query parameters
func Key(query url.Values) string {
	sum := sha256.Sum256([]byte(query.Encode()))
	return listingKeyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached payload for key, if present
func (c *ListingCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Redis GET failed")
		}
		return nil, false
	}
	return payload, true
}

// Set stores a payload under key with the configured TTL
func (c *ListingCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Redis SET failed")
	}
}

// Invalidate drops every cached listing payload. Called after any property
// mutation; failures only cost freshness, never correctness.
func (c *ListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, listingKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", iter.Val()).Msg("Redis DEL failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("Redis SCAN failed during cache invalidation")
	}
}

// Close releases the underlying client
func (c *ListingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
