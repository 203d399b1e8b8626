package reading

import (
	"context"
	"errors"

	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JapaService handles the per-user chant counter
type JapaService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewJapaService creates a new japa counter service
func NewJapaService(userRepo identity.UserRepository, logger *zap.Logger) *JapaService {
	return &JapaService{userRepo: userRepo, logger: logger}
}

// Increment adds a positive delta to the counter and returns the new
// total. The add happens in one SQL expression, so concurrent increments
// never lose counts.
func (s *JapaService) Increment(ctx context.Context, userID uuid.UUID, count int64) (int64, error) {
	if count <= 0 {
		return 0, shared.NewDomainError("INVALID_INPUT", "Invalid count provided.")
	}

	total, err := s.userRepo.IncrementJapaCount(ctx, userID, count)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, shared.NewDomainError("NOT_FOUND", "User not found.")
		}
		s.logger.Error("Failed to increment japa count", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Server error while updating count.")
	}
	return total, nil
}

// Get returns the user's current counter value
func (s *JapaService) Get(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, shared.NewDomainError("NOT_FOUND", "User not found.")
		}
		s.logger.Error("Failed to load japa count", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}
	return user.JapaCount, nil
}
