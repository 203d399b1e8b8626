package reading

import (
	"context"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Favourite marks a saved verse; presence of the row is membership.
// Rows are deleted on toggle-off, never soft-deleted.
type Favourite struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Chapter int
	Verse   int
}

// NewFavourite creates a favourite marker for a verse.
func NewFavourite(userID uuid.UUID, chapter, verse int) *Favourite {
	return &Favourite{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Chapter:    chapter,
		Verse:      verse,
	}
}

// FavouriteRepository defines persistence operations for favourites.
// Create must return shared.ErrAlreadyExists when the unique
// (user, chapter, verse) constraint rejects a concurrent duplicate.
type FavouriteRepository interface {
	Find(ctx context.Context, userID uuid.UUID, chapter, verse int) (*Favourite, error)
	Create(ctx context.Context, favourite *Favourite) error
	Delete(ctx context.Context, userID uuid.UUID, chapter, verse int) error
	// ListByUser returns the user's favourites, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favourite, error)
}
