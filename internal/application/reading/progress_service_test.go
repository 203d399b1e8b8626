package reading

import (
	"context"
	"testing"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress *reading.VerseProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) UpsertBatch(ctx context.Context, records []*reading.VerseProgress) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockProgressRepository) FindByUserAndChapter(ctx context.Context, userID uuid.UUID, chapter int) ([]reading.VerseProgress, error) {
	args := m.Called(ctx, userID, chapter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reading.VerseProgress), args.Error(1)
}

func (m *MockProgressRepository) CountCompletedByChapter(ctx context.Context, userID uuid.UUID) ([]reading.ChapterCompletion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reading.ChapterCompletion), args.Error(1)
}

func TestProgressService_SetVerse(t *testing.T) {
	t.Run("upserts a catalog verse", func(t *testing.T) {
		repo := new(MockProgressRepository)
		svc := NewProgressService(repo, zap.NewNop())
		userID := uuid.New()

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *reading.VerseProgress) bool {
			return p.UserID == userID && p.Chapter == 2 && p.Verse == 47 && p.Completed && p.CompletedAt != nil
		})).Return(nil)

		written, err := svc.SetVerse(context.Background(), userID, SetVerseInput{Chapter: 2, Verse: 47, Completed: true})

		assert.NoError(t, err)
		require.NotNil(t, written)
		assert.Equal(t, 2, written.Chapter)
		assert.Equal(t, 47, written.Verse)
		assert.True(t, written.Completed)
		assert.NotNil(t, written.CompletedAt)
		repo.AssertExpectations(t)
	})

	t.Run("unmarking clears the completion timestamp", func(t *testing.T) {
		repo := new(MockProgressRepository)
		svc := NewProgressService(repo, zap.NewNop())

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *reading.VerseProgress) bool {
			return !p.Completed && p.CompletedAt == nil
		})).Return(nil)

		written, err := svc.SetVerse(context.Background(), uuid.New(), SetVerseInput{Chapter: 2, Verse: 47, Completed: false})

		assert.NoError(t, err)
		require.NotNil(t, written)
		assert.False(t, written.Completed)
		assert.Nil(t, written.CompletedAt)
	})

	t.Run("rejects a verse outside the catalog", func(t *testing.T) {
		svc := NewProgressService(new(MockProgressRepository), zap.NewNop())

		_, err := svc.SetVerse(context.Background(), uuid.New(), SetVerseInput{Chapter: 2, Verse: 73, Completed: true})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestProgressService_SetChapter(t *testing.T) {
	t.Run("defaults to the whole catalog chapter", func(t *testing.T) {
		repo := new(MockProgressRepository)
		svc := NewProgressService(repo, zap.NewNop())

		repo.On("UpsertBatch", mock.Anything, mock.MatchedBy(func(records []*reading.VerseProgress) bool {
			return len(records) == 20 && records[0].Chapter == 12
		})).Return(nil)

		affected, err := svc.SetChapter(context.Background(), uuid.New(), SetChapterInput{Chapter: 12, Completed: true})

		require.NoError(t, err)
		assert.Equal(t, 20, affected)
	})

	t.Run("uses the explicit verse list when given", func(t *testing.T) {
		repo := new(MockProgressRepository)
		svc := NewProgressService(repo, zap.NewNop())

		repo.On("UpsertBatch", mock.Anything, mock.MatchedBy(func(records []*reading.VerseProgress) bool {
			return len(records) == 3
		})).Return(nil)

		affected, err := svc.SetChapter(context.Background(), uuid.New(), SetChapterInput{
			Chapter:   2,
			VerseIDs:  []int{1, 2, 3},
			Completed: true,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, affected)
	})

	t.Run("rejects an unknown chapter", func(t *testing.T) {
		svc := NewProgressService(new(MockProgressRepository), zap.NewNop())

		_, err := svc.SetChapter(context.Background(), uuid.New(), SetChapterInput{Chapter: 19, Completed: true})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "No verses found for given chapter", domainErr.Message)
	})

	t.Run("rejects a list with no catalog verses", func(t *testing.T) {
		svc := NewProgressService(new(MockProgressRepository), zap.NewNop())

		_, err := svc.SetChapter(context.Background(), uuid.New(), SetChapterInput{
			Chapter:   12,
			VerseIDs:  []int{21, 22},
			Completed: true,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "No verses found for given chapter", domainErr.Message)
	})
}

func TestProgressService_Summary(t *testing.T) {
	repo := new(MockProgressRepository)
	svc := NewProgressService(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("CountCompletedByChapter", mock.Anything, userID).Return([]reading.ChapterCompletion{
		{Chapter: 1, CompletedCount: 47},
		{Chapter: 2, CompletedCount: 24},
	}, nil)

	summaries, err := svc.Summary(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, summaries, 18, "every catalog chapter is listed")

	assert.Equal(t, ChapterSummary{Chapter: 1, TotalVerses: 47, CompletedCount: 47, Percent: 100}, summaries[0])
	// 24/72 rounds to 33.
	assert.Equal(t, ChapterSummary{Chapter: 2, TotalVerses: 72, CompletedCount: 24, Percent: 33}, summaries[1])
	// No rows at all still yields a zero entry.
	assert.Equal(t, ChapterSummary{Chapter: 18, TotalVerses: 78, CompletedCount: 0, Percent: 0}, summaries[17])
}

func TestProgressService_ChapterDetail(t *testing.T) {
	t.Run("merges stored rows over the catalog baseline", func(t *testing.T) {
		repo := new(MockProgressRepository)
		svc := NewProgressService(repo, zap.NewNop())
		userID := uuid.New()

		stored := reading.NewVerseProgress(userID, 12, 3, true)
		repo.On("FindByUserAndChapter", mock.Anything, userID, 12).
			Return([]reading.VerseProgress{*stored}, nil)

		states, err := svc.ChapterDetail(context.Background(), userID, 12)

		require.NoError(t, err)
		require.Len(t, states, 20)
		assert.False(t, states[0].Completed)
		assert.Nil(t, states[0].CompletedAt)
		assert.True(t, states[2].Completed)
		assert.NotNil(t, states[2].CompletedAt)
	})

	t.Run("rejects an unknown chapter", func(t *testing.T) {
		svc := NewProgressService(new(MockProgressRepository), zap.NewNop())

		_, err := svc.ChapterDetail(context.Background(), uuid.New(), 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}
