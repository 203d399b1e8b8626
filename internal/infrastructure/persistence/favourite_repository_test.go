package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormFavouriteRepository_Find(t *testing.T) {
	t.Run("finds existing favourite", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		userID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "chapter", "verse"}).
			AddRow(uuid.New(), now, now, userID, 2, 47)

		mock.ExpectQuery(`SELECT \* FROM "favourites" WHERE user_id = \$1 AND chapter = \$2 AND verse = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 2, 47, 1).
			WillReturnRows(rows)

		favourite, err := repo.Find(context.Background(), userID, 2, 47)

		require.NoError(t, err)
		assert.Equal(t, 2, favourite.Chapter)
		assert.Equal(t, 47, favourite.Verse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when absent", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "favourites" WHERE user_id = \$1 AND chapter = \$2 AND verse = \$3 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 2, 47, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		favourite, err := repo.Find(context.Background(), userID, 2, 47)

		assert.Nil(t, favourite)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFavouriteRepository_Create(t *testing.T) {
	t.Run("inserts favourite", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		mock.ExpectExec(`INSERT INTO "favourites"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), reading.NewFavourite(uuid.New(), 2, 47))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("translates lost insert race to ErrAlreadyExists", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		mock.ExpectExec(`INSERT INTO "favourites"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err := repo.Create(context.Background(), reading.NewFavourite(uuid.New(), 2, 47))

		assert.Equal(t, shared.ErrAlreadyExists, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFavouriteRepository_Delete(t *testing.T) {
	t.Run("deletes favourite", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		userID := uuid.New()
		mock.ExpectExec(`DELETE FROM "favourites" WHERE user_id = \$1 AND chapter = \$2 AND verse = \$3`).
			WithArgs(userID, 2, 47).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), userID, 2, 47)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormFavouriteRepository(gormDB)

		userID := uuid.New()
		mock.ExpectExec(`DELETE FROM "favourites" WHERE user_id = \$1 AND chapter = \$2 AND verse = \$3`).
			WithArgs(userID, 2, 47).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID, 2, 47)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormFavouriteRepository_ListByUser(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormFavouriteRepository(gormDB)

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "chapter", "verse"}).
		AddRow(uuid.New(), now, now, userID, 18, 78).
		AddRow(uuid.New(), now.Add(-time.Hour), now.Add(-time.Hour), userID, 2, 47)

	mock.ExpectQuery(`SELECT \* FROM "favourites" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(rows)

	favourites, err := repo.ListByUser(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, favourites, 2)
	assert.Equal(t, 18, favourites[0].Chapter)
	assert.Equal(t, 2, favourites[1].Chapter)
	assert.NoError(t, mock.ExpectationsWereMet())
}
