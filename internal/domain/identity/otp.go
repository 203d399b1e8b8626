package identity

import (
	"context"
	"time"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OTPRecord is a single one-time-code issuance. A record may be verified
// successfully at most once; after Used is set it is never mutated again.
type OTPRecord struct {
	shared.BaseEntity
	DeliveryTarget string
	OTPHash        string
	AttemptsLeft   int
	ExpiresAt      time.Time
	Used           bool
}

// NewOTPRecord creates an issuance with a full attempt budget.
func NewOTPRecord(target, hash string, attempts int, ttl time.Duration) *OTPRecord {
	return &OTPRecord{
		BaseEntity:     shared.NewBaseEntity(),
		DeliveryTarget: target,
		OTPHash:        hash,
		AttemptsLeft:   attempts,
		ExpiresAt:      time.Now().Add(ttl),
	}
}

// IsExpired reports whether the record is past its expiry instant.
func (o *OTPRecord) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}

// HasAttemptsLeft reports whether the attempt budget is not yet exhausted.
func (o *OTPRecord) HasAttemptsLeft() bool {
	return o.AttemptsLeft > 0
}

// RecordFailedAttempt burns one attempt, never going below zero.
func (o *OTPRecord) RecordFailedAttempt() {
	if o.AttemptsLeft > 0 {
		o.AttemptsLeft--
	}
}

// MarkUsed flips the record to its terminal state.
func (o *OTPRecord) MarkUsed() {
	o.Used = true
}

// OTPRepository defines persistence operations for OTP records
type OTPRepository interface {
	Create(ctx context.Context, otp *OTPRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*OTPRecord, error)
	// FindLatestByTarget returns the most recently created record for a
	// delivery target.
	FindLatestByTarget(ctx context.Context, target string) (*OTPRecord, error)
	Update(ctx context.Context, otp *OTPRecord) error
	// DeleteExpired garbage-collects records past their expiry and returns
	// the number deleted.
	DeleteExpired(ctx context.Context) (int64, error)
}
