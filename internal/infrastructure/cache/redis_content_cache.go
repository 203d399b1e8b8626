package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisContentCache implements ContentCache on Redis. Suitable when
// multiple instances should share the upstream content cache.
type RedisContentCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisContentCache creates a Redis-backed content cache, verifying
// connectivity up front so callers can fall back when Redis is absent
func NewRedisContentCache(cfg RedisConfig) (*RedisContentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisContentCache{
		client:    client,
		keyPrefix: "content:",
	}, nil
}

// NewRedisContentCacheWithClient creates a cache with an existing Redis client
func NewRedisContentCacheWithClient(client *redis.Client, keyPrefix string) *RedisContentCache {
	if keyPrefix == "" {
		keyPrefix = "content:"
	}
	return &RedisContentCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached payload and whether it was present
func (c *RedisContentCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read content cache: %w", err)
	}
	return value, true, nil
}

// Set stores a payload with a TTL
func (c *RedisContentCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write content cache: %w", err)
	}
	return nil
}

// Delete removes a single entry
func (c *RedisContentCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete content cache entry: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisContentCache) Close() error {
	return c.client.Close()
}

// Ensure RedisContentCache implements ContentCache
var _ ContentCache = (*RedisContentCache)(nil)
