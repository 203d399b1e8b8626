// Package content serves chapter and verse texts through a read-through
// cache over the upstream API.
package content

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/cache"
	"github.com/gita/backend/internal/infrastructure/catalog"
	"go.uber.org/zap"
)

// Fetcher is the upstream client surface the service needs
type Fetcher interface {
	Chapters(ctx context.Context) (string, error)
	Chapter(ctx context.Context, chapter int) (string, error)
	Verses(ctx context.Context, chapter int) (string, error)
	Verse(ctx context.Context, chapter, verse int) (string, error)
}

// ContentService proxies upstream text payloads with a TTL cache. Cache
// failures degrade to direct upstream reads, never to request failures.
type ContentService struct {
	fetcher  Fetcher
	cache    cache.ContentCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(fetcher Fetcher, contentCache cache.ContentCache, cacheTTL time.Duration, logger *zap.Logger) *ContentService {
	return &ContentService{
		fetcher:  fetcher,
		cache:    contentCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Chapters returns the chapter list payload
func (s *ContentService) Chapters(ctx context.Context) (string, error) {
	return s.cached(ctx, "chapters", func() (string, error) {
		return s.fetcher.Chapters(ctx)
	})
}

// Chapter returns a single chapter payload
func (s *ContentService) Chapter(ctx context.Context, chapter int) (string, error) {
	if chapter < 1 || chapter > catalog.ChapterCount {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid chapter")
	}
	return s.cached(ctx, fmt.Sprintf("chapter:%d", chapter), func() (string, error) {
		return s.fetcher.Chapter(ctx, chapter)
	})
}

// Verses returns all verses of a chapter
func (s *ContentService) Verses(ctx context.Context, chapter int) (string, error) {
	if chapter < 1 || chapter > catalog.ChapterCount {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid chapter")
	}
	return s.cached(ctx, fmt.Sprintf("chapter:%d:verses", chapter), func() (string, error) {
		return s.fetcher.Verses(ctx, chapter)
	})
}

// Verse returns a single verse payload
func (s *ContentService) Verse(ctx context.Context, chapter, verse int) (string, error) {
	if !catalog.HasVerse(chapter, verse) {
		return "", shared.NewDomainError("INVALID_INPUT", "Invalid chapter or verse")
	}
	return s.cached(ctx, fmt.Sprintf("chapter:%d:verse:%d", chapter, verse), func() (string, error) {
		return s.fetcher.Verse(ctx, chapter, verse)
	})
}

// VerseOfTheDay returns one randomly chosen verse. The pick is cached
// under the current date and held until local midnight, so every caller
// sees the same verse for the rest of the day.
func (s *ContentService) VerseOfTheDay(ctx context.Context) (string, error) {
	now := time.Now()
	key := "slok:" + now.Format("2006-01-02")
	if payload, found, err := s.cache.Get(ctx, key); err == nil && found {
		return payload, nil
	} else if err != nil {
		s.logger.Warn("Content cache read failed", zap.String("key", key), zap.Error(err))
	}

	chapter := rand.Intn(catalog.ChapterCount) + 1
	count, err := catalog.VerseCount(chapter)
	if err != nil {
		return "", shared.NewDomainError("INTERNAL_ERROR", "Something went wrong")
	}
	verse := rand.Intn(count) + 1

	payload, err := s.fetcher.Verse(ctx, chapter, verse)
	if err != nil {
		s.logger.Error("Upstream content fetch failed", zap.String("key", key), zap.Error(err))
		return "", shared.NewDomainError("UPSTREAM_FAILED", "Something went wrong")
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	if err := s.cache.Set(ctx, key, payload, midnight.Sub(now)); err != nil {
		s.logger.Warn("Content cache write failed", zap.String("key", key), zap.Error(err))
	}
	return payload, nil
}

// cached reads through the cache: hit returns immediately, miss fetches
// upstream and stores the payload for the TTL
func (s *ContentService) cached(ctx context.Context, key string, fetch func() (string, error)) (string, error) {
	if payload, found, err := s.cache.Get(ctx, key); err == nil && found {
		return payload, nil
	} else if err != nil {
		s.logger.Warn("Content cache read failed", zap.String("key", key), zap.Error(err))
	}

	payload, err := fetch()
	if err != nil {
		s.logger.Error("Upstream content fetch failed", zap.String("key", key), zap.Error(err))
		return "", shared.NewDomainError("UPSTREAM_FAILED", "Something went wrong")
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("Content cache write failed", zap.String("key", key), zap.Error(err))
	}
	return payload, nil
}
