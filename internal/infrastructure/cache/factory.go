package cache

import (
	"fmt"

	"github.com/gita/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ContentCacheFactory creates content caches based on configuration
type ContentCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ContentCacheFactoryOption is a functional option for configuring the factory
type ContentCacheFactoryOption func(*ContentCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ContentCacheFactoryOption {
	return func(f *ContentCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ContentCacheFactoryOption {
	return func(f *ContentCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewContentCacheFactory creates a new factory
func NewContentCacheFactory(cfg config.RedisConfig, opts ...ContentCacheFactoryOption) *ContentCacheFactory {
	f := &ContentCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based content cache
func (f *ContentCacheFactory) CreateRedisCache() (ContentCache, error) {
	cache, err := NewRedisContentCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis content cache: %w", err)
	}
	return cache, nil
}

// CreateCache creates a content cache, preferring Redis and falling back
// to in-memory when Redis is not reachable and fallback is allowed
func (f *ContentCacheFactory) CreateCache() (ContentCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis content cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for content cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory content cache",
		zap.Error(err),
	)
	return NewInMemoryContentCache(), nil
}
