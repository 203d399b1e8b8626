package reading

import (
	"context"
	"errors"

	"github.com/gita/backend/internal/domain/reading"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavouriteService handles the favourites list and its toggle
type FavouriteService struct {
	favouriteRepo reading.FavouriteRepository
	logger        *zap.Logger
}

// NewFavouriteService creates a new favourite service
func NewFavouriteService(favouriteRepo reading.FavouriteRepository, logger *zap.Logger) *FavouriteService {
	return &FavouriteService{favouriteRepo: favouriteRepo, logger: logger}
}

// Toggle flips membership for a verse: delete when present, insert when
// absent. A duplicate-key insert means a racing toggle already reached
// the desired state, so it reports favourite rather than failing.
func (s *FavouriteService) Toggle(ctx context.Context, userID uuid.UUID, input ToggleInput) (*ToggleResult, error) {
	if !catalog.HasVerse(input.Chapter, input.Verse) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Missing chapter or verse")
	}

	_, err := s.favouriteRepo.Find(ctx, userID, input.Chapter, input.Verse)
	switch {
	case err == nil:
		if err := s.favouriteRepo.Delete(ctx, userID, input.Chapter, input.Verse); err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to delete favourite", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
		}
		return &ToggleResult{Favourite: false}, nil

	case errors.Is(err, shared.ErrNotFound):
		createErr := s.favouriteRepo.Create(ctx, reading.NewFavourite(userID, input.Chapter, input.Verse))
		if createErr != nil && !errors.Is(createErr, shared.ErrAlreadyExists) {
			s.logger.Error("Failed to create favourite", zap.Error(createErr))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
		}
		return &ToggleResult{Favourite: true}, nil

	default:
		s.logger.Error("Failed to look up favourite", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}
}

// List returns the user's favourites, most recent first
func (s *FavouriteService) List(ctx context.Context, userID uuid.UUID) ([]FavouriteItem, error) {
	favourites, err := s.favouriteRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list favourites", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	items := make([]FavouriteItem, len(favourites))
	for i, f := range favourites {
		items[i] = FavouriteItem{
			Chapter:   f.Chapter,
			Verse:     f.Verse,
			CreatedAt: f.CreatedAt,
		}
	}
	return items, nil
}
