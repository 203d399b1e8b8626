package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gita/backend/internal/domain/identity"
	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/auth"
	"github.com/gita/backend/internal/infrastructure/mail"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OTPServiceConfig contains configuration for the OTP service
type OTPServiceConfig struct {
	CodeLength  int           // Digits in a generated code
	TTL         time.Duration // How long a code stays valid
	Attempts    int           // Attempt budget per issuance
	SendTimeout time.Duration // Upper bound on email dispatch
	DevEcho     bool          // Echo the raw code in the issue result
	AppName     string        // Used in the email subject
}

// DefaultOTPServiceConfig returns default configuration
func DefaultOTPServiceConfig() OTPServiceConfig {
	return OTPServiceConfig{
		CodeLength:  6,
		TTL:         10 * time.Minute,
		Attempts:    5,
		SendTimeout: 10 * time.Second,
		AppName:     "Bhagavad Gita",
	}
}

// OTPService handles one-time-code issuance and verification
type OTPService struct {
	otpRepo        identity.OTPRepository
	userRepo       identity.UserRepository
	sessionService *auth.SessionService
	sender         mail.Sender
	config         OTPServiceConfig
	logger         *zap.Logger
}

// NewOTPService creates a new OTP service
func NewOTPService(
	otpRepo identity.OTPRepository,
	userRepo identity.UserRepository,
	sessionService *auth.SessionService,
	sender mail.Sender,
	config OTPServiceConfig,
	logger *zap.Logger,
) *OTPService {
	return &OTPService{
		otpRepo:        otpRepo,
		userRepo:       userRepo,
		sessionService: sessionService,
		sender:         sender,
		config:         config,
		logger:         logger,
	}
}

// Issue generates a code, stores its hash, and dispatches it by email.
// The stored record is the source of truth; a failed email never rolls
// it back, the client just resends.
func (s *OTPService) Issue(ctx context.Context, input IssueOTPInput) (*IssueOTPResult, error) {
	if strings.TrimSpace(input.Phone) != "" {
		return nil, shared.NewDomainError("SMS_DISABLED", "SMS-based OTP is disabled. Please use email for OTP login.")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "email required")
	}

	code, err := s.generateCode()
	if err != nil {
		s.logger.Error("Failed to generate OTP code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash OTP code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	record := identity.NewOTPRecord(email, string(hash), s.config.Attempts, s.config.TTL)
	if err := s.otpRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to store OTP record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	s.dispatchEmail(ctx, email, code)

	s.logger.Info("OTP issued", zap.String("target", email), zap.String("otp_id", record.ID.String()))

	result := &IssueOTPResult{OTPID: record.ID.String()}
	if s.config.DevEcho {
		result.DevOTP = code
	}
	return result, nil
}

// dispatchEmail sends the code, bounded by the configured timeout.
// Failure is logged and swallowed; the issued record stays valid.
func (s *OTPService) dispatchEmail(ctx context.Context, email, code string) {
	sendCtx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
	defer cancel()

	msg := mail.Message{
		To:      email,
		Subject: fmt.Sprintf("Your %s login code", s.config.AppName),
		Body: fmt.Sprintf("Your one-time login code is: %s\n\nIt expires in %d minutes. If you did not request it, ignore this email.",
			code, int(s.config.TTL.Minutes())),
	}
	if err := s.sender.Send(sendCtx, msg); err != nil {
		s.logger.Warn("Failed to send OTP email", zap.String("target", email), zap.Error(err))
	}
}

// Verify checks a submitted code against its issuance and, on success,
// resolves or creates the user and mints a session token
func (s *OTPService) Verify(ctx context.Context, input VerifyOTPInput) (*VerifyOTPResult, error) {
	if strings.TrimSpace(input.OTP) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "otp required")
	}

	record, err := s.locate(ctx, input)
	if err != nil {
		return nil, shared.NewDomainError("OTP_NOT_FOUND", "OTP not found or expired")
	}

	// Rejection order is part of the contract: used, exhausted, expired,
	// then the code comparison.
	if record.Used {
		return nil, shared.NewDomainError("OTP_USED", "OTP already used")
	}
	if !record.HasAttemptsLeft() {
		return nil, shared.NewDomainError("OTP_ATTEMPTS_EXHAUSTED", "Too many failed attempts")
	}
	if record.IsExpired() {
		return nil, shared.NewDomainError("OTP_EXPIRED", "OTP expired")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.OTPHash), []byte(input.OTP)); err != nil {
		record.RecordFailedAttempt()
		if updateErr := s.otpRepo.Update(ctx, record); updateErr != nil {
			s.logger.Error("Failed to persist OTP attempt", zap.Error(updateErr))
		}
		return nil, shared.NewDomainError("OTP_INVALID", "Invalid OTP")
	}

	record.MarkUsed()
	if err := s.otpRepo.Update(ctx, record); err != nil {
		s.logger.Error("Failed to mark OTP used", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	user, err := s.resolveUser(ctx, record.DeliveryTarget)
	if err != nil {
		s.logger.Error("Failed to resolve user after verification", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	token, expiresAt, err := s.sessionService.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to mint session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Server error")
	}

	s.logger.Info("OTP verified", zap.String("user_id", user.ID.String()))

	return &VerifyOTPResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// locate finds the issuance by id, falling back to the newest record for
// the email when the id is absent or unparseable
func (s *OTPService) locate(ctx context.Context, input VerifyOTPInput) (*identity.OTPRecord, error) {
	if id, err := uuid.Parse(strings.TrimSpace(input.OTPID)); err == nil {
		return s.otpRepo.FindByID(ctx, id)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, shared.ErrNotFound
	}
	return s.otpRepo.FindLatestByTarget(ctx, email)
}

// resolveUser finds the account for a verified email, creating it on
// first login. A lost creation race falls back to the winner's row.
func (s *OTPService) resolveUser(ctx context.Context, email string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user = identity.NewUser(email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return s.userRepo.FindByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

// generateCode produces a zero-padded numeric code from crypto/rand
func (s *OTPService) generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < s.config.CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.config.CodeLength, n), nil
}
