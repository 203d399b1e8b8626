package identity

import (
	"time"

	"github.com/gita/backend/internal/domain/identity"
)

// IssueOTPInput contains input for issuing a one-time code
type IssueOTPInput struct {
	Email string
	Phone string
}

// IssueOTPResult is the outcome of a successful issuance
type IssueOTPResult struct {
	OTPID string
	// DevOTP carries the raw code when dev echo is enabled, empty otherwise.
	DevOTP string
}

// VerifyOTPInput contains input for verifying a one-time code
type VerifyOTPInput struct {
	OTPID string
	Email string
	OTP   string
}

// VerifyOTPResult is the outcome of a successful verification
type VerifyOTPResult struct {
	User      *identity.User
	Token     string
	ExpiresAt time.Time
}

// UpdateProfileInput contains the optional profile fields of a PATCH
type UpdateProfileInput struct {
	DisplayName *string
	AvatarURL   *string
}
