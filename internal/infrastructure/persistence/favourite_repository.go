package persistence

import (
	"context"
	"errors"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFavouriteRepository implements FavouriteRepository using GORM
type GormFavouriteRepository struct {
	db *gorm.DB
}

// NewGormFavouriteRepository creates a new GormFavouriteRepository
func NewGormFavouriteRepository(db *gorm.DB) *GormFavouriteRepository {
	return &GormFavouriteRepository{db: db}
}

// Find returns the favourite for a (user, chapter, verse) triple
func (r *GormFavouriteRepository) Find(ctx context.Context, userID uuid.UUID, chapter, verse int) (*reading.Favourite, error) {
	var model models.FavouriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter = ? AND verse = ?", userID, chapter, verse).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a favourite. Losing the insert race against another
// request for the same verse surfaces as ErrAlreadyExists, which the
// toggle treats as success.
func (r *GormFavouriteRepository) Create(ctx context.Context, favourite *reading.Favourite) error {
	var model models.FavouriteModel
	model.FromDomain(favourite)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes the favourite for a (user, chapter, verse) triple
func (r *GormFavouriteRepository) Delete(ctx context.Context, userID uuid.UUID, chapter, verse int) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND chapter = ? AND verse = ?", userID, chapter, verse).
		Delete(&models.FavouriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's favourites, most recent first
func (r *GormFavouriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]reading.Favourite, error) {
	var favouriteModels []models.FavouriteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favouriteModels).Error; err != nil {
		return nil, err
	}

	favourites := make([]reading.Favourite, len(favouriteModels))
	for i, model := range favouriteModels {
		favourites[i] = *model.ToDomain()
	}
	return favourites, nil
}

// Ensure GormFavouriteRepository implements FavouriteRepository
var _ reading.FavouriteRepository = (*GormFavouriteRepository)(nil)
