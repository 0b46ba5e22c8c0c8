package qrcode

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// MemoryCache is an in-process, size-bounded cache with per-entry expiry.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates a MemoryCache holding at most size renders for ttl.
// A zero ttl disables expiry.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, png []byte) {
	c.lru.Add(key, png)
}

// Len reports the number of cached renders.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// RedisCache shares renders between API instances.
//
// Redis being unreachable is not an error for callers: the failure is logged
// and the image is rendered again.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	png, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("qrcode cache read failed")
		}
		return nil, false
	}
	return png, true
}

func (c *RedisCache) Set(ctx context.Context, key string, png []byte) {
	if err := c.client.Set(ctx, key, png, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("qrcode cache write failed")
	}
}
