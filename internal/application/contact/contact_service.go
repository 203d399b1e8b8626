// Package contact handles the contact form: an acknowledgment to the
// sender, then a copy of the query to the admin inbox.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/gita/backend/internal/domain/shared"
	"github.com/gita/backend/internal/infrastructure/mail"
	"go.uber.org/zap"
)

// Input is a submitted contact form
type Input struct {
	Name    string
	Email   string
	Message string
}

// ServiceConfig contains configuration for the contact service
type ServiceConfig struct {
	AdminTo   string // Where query copies go
	Signature string // Name signing the acknowledgment
}

// Service relays contact form submissions by email
type Service struct {
	sender mail.Sender
	config ServiceConfig
	logger *zap.Logger
}

// NewService creates a new contact service
func NewService(sender mail.Sender, config ServiceConfig, logger *zap.Logger) *Service {
	return &Service{sender: sender, config: config, logger: logger}
}

// Submit acknowledges the sender and forwards the query to the admin.
// The acknowledgment is the primary write; the admin copy is best effort.
func (s *Service) Submit(ctx context.Context, input Input) error {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if name == "" || email == "" || message == "" {
		return shared.NewDomainError("INVALID_INPUT", "name, email, and message are required")
	}

	ack := mail.Message{
		To:      email,
		Subject: "Query Received - Gita App",
		Body: fmt.Sprintf("Hi %s,\n\nThanks for raising a query. I have received it and will contact you within 24-48 Hours.\n\nRegards,\n%s",
			name, s.config.Signature),
	}
	if err := s.sender.Send(ctx, ack); err != nil {
		s.logger.Error("Failed to send contact acknowledgment", zap.String("to", email), zap.Error(err))
		return shared.NewDomainError("MAIL_FAILED", "Could not send email. Please try again.")
	}

	if s.config.AdminTo != "" {
		copy := mail.Message{
			To:      s.config.AdminTo,
			Subject: fmt.Sprintf("New Query from %s", name),
			Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", name, email, message),
		}
		if err := s.sender.Send(ctx, copy); err != nil {
			s.logger.Warn("Failed to forward query to admin", zap.Error(err))
		}
	}

	return nil
}
