package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gita/backend/internal/domain/reading"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProgressRepository_Upsert(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProgressRepository(gormDB)

	progress := reading.NewVerseProgress(uuid.New(), 2, 47, true)

	mock.ExpectExec(`INSERT INTO "verse_progress" .* ON CONFLICT \("user_id","chapter","verse"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), progress)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProgressRepository_UpsertBatch(t *testing.T) {
	t.Run("writes all rows in one statement", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProgressRepository(gormDB)

		userID := uuid.New()
		items := []*reading.VerseProgress{
			reading.NewVerseProgress(userID, 12, 1, true),
			reading.NewVerseProgress(userID, 12, 2, true),
			reading.NewVerseProgress(userID, 12, 3, true),
		}

		mock.ExpectExec(`INSERT INTO "verse_progress" .* ON CONFLICT \("user_id","chapter","verse"\) DO UPDATE SET`).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := repo.UpsertBatch(context.Background(), items)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProgressRepository(gormDB)

		err := repo.UpsertBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProgressRepository_FindByUserAndChapter(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProgressRepository(gormDB)

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "chapter", "verse", "completed", "completed_at"}).
		AddRow(uuid.New(), now, now, userID, 2, 1, true, now).
		AddRow(uuid.New(), now, now, userID, 2, 2, false, nil)

	mock.ExpectQuery(`SELECT \* FROM "verse_progress" WHERE user_id = \$1 AND chapter = \$2 ORDER BY verse ASC`).
		WithArgs(userID, 2).
		WillReturnRows(rows)

	items, err := repo.FindByUserAndChapter(context.Background(), userID, 2)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Verse)
	assert.True(t, items[0].Completed)
	assert.NotNil(t, items[0].CompletedAt)
	assert.False(t, items[1].Completed)
	assert.Nil(t, items[1].CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProgressRepository_CountCompletedByChapter(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProgressRepository(gormDB)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"chapter", "completed_count"}).
		AddRow(1, 47).
		AddRow(2, 30)

	mock.ExpectQuery(`SELECT chapter, COUNT\(\*\) AS completed_count FROM "verse_progress" WHERE user_id = \$1 AND completed = \$2 GROUP BY .* ORDER BY chapter ASC`).
		WithArgs(userID, true).
		WillReturnRows(rows)

	completions, err := repo.CountCompletedByChapter(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, completions, 2)
	assert.Equal(t, 1, completions[0].Chapter)
	assert.Equal(t, 47, completions[0].CompletedCount)
	assert.Equal(t, 2, completions[1].Chapter)
	assert.Equal(t, 30, completions[1].CompletedCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
