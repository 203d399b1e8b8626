package identity

import (
	"context"
	"errors"

	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles profile reads and updates
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}
	return user, nil
}

// UpdateProfile applies the provided profile fields. An update that
// carries no usable field is rejected rather than silently ignored.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to load user for profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	if !user.ApplyProfileUpdate(input.DisplayName, input.AvatarURL) {
		return nil, shared.NewDomainError("INVALID_INPUT", "No valid fields provided")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to persist profile update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	s.logger.Info("Profile updated", zap.String("user_id", id.String()))
	return user, nil
}
