package speech

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/zeebo/xxh3"
)

const defaultCachePrefix = "voicecalc:tts:"

// CacheKey identifies the audio of text spoken by provider.
func CacheKey(provider, text string) string {
	return provider + ":" + strconv.FormatUint(xxh3.HashString(text), 16)
}

// RedisCache keeps synthesized audio in Redis.
type RedisCache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type CacheOption func(*RedisCache)

// WithTTL sets the expiration of cached audio; 0 keeps it forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *RedisCache) { c.ttl = ttl }
}

func WithPrefix(prefix string) CacheOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

func NewRedisCache(address, password string, db int, opts ...CacheOption) *RedisCache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisCacheFromClient(rdb, opts...)
}

func NewRedisCacheFromClient(client *backend.Client, opts ...CacheOption) *RedisCache {
	c := &RedisCache{
		client: client,
		prefix: defaultCachePrefix,
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping checks connectivity at start-up.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, audio []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, audio, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }
