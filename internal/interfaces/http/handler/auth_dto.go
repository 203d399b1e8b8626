package handler

import (
	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/interfaces/http/dto"
)

// SendOTPRequest is the body of POST /auth/send-otp
type SendOTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SendOTPResponse acknowledges an issued code. OTP is only populated
// when dev echo is enabled.
type SendOTPResponse struct {
	dto.OKResponse
	Message string `json:"message"`
	OTPID   string `json:"otpId"`
	OTP     string `json:"otp,omitempty"`
}

// VerifyOTPRequest is the body of POST /auth/verify-otp
type VerifyOTPRequest struct {
	OTPID string `json:"otpId"`
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTPResponse carries the logged-in user after verification
type VerifyOTPResponse struct {
	dto.OKResponse
	Message string       `json:"message"`
	User    *UserPayload `json:"user"`
}

// UpdateProfileRequest is the body of PATCH /auth/me. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// UserResponse wraps a user payload; User is null for anonymous callers
type UserResponse struct {
	dto.OKResponse
	User *UserPayload `json:"user"`
}

// UserPayload is the wire shape of a user
type UserPayload struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	JapaCount   int64   `json:"japaCount"`
}

// NewUserPayload maps a domain user onto the wire shape, with empty
// optional fields rendered as null
func NewUserPayload(user *identity.User) *UserPayload {
	if user == nil {
		return nil
	}
	return &UserPayload{
		ID:          user.ID.String(),
		Email:       user.Email,
		Phone:       nullable(user.Phone),
		DisplayName: nullable(user.DisplayName),
		AvatarURL:   nullable(user.AvatarURL),
		JapaCount:   user.JapaCount,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
