package identity

import (
	"context"
	"strings"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// User is a reader account, created lazily on the first successful OTP
// verification for an unseen email. Users are never deleted.
type User struct {
	shared.BaseEntity
	Email       string
	Phone       string
	DisplayName string
	AvatarURL   string
	JapaCount   int64
}

// NewUser creates a user keyed by a verified email address.
func NewUser(email string) *User {
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}
}

// DisplayNameOrEmail returns the display name, falling back to the email.
func (u *User) DisplayNameOrEmail() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// ApplyProfileUpdate sets the profile fields that are present and non-blank.
// It reports whether anything changed.
func (u *User) ApplyProfileUpdate(displayName, avatarURL *string) bool {
	changed := false
	if displayName != nil {
		if v := strings.TrimSpace(*displayName); v != "" {
			u.DisplayName = v
			changed = true
		}
	}
	if avatarURL != nil {
		if v := strings.TrimSpace(*avatarURL); v != "" {
			u.AvatarURL = v
			changed = true
		}
	}
	return changed
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	// IncrementJapaCount atomically adds delta to the stored counter and
	// returns the new total.
	IncrementJapaCount(ctx context.Context, id uuid.UUID, delta int64) (int64, error)
}
