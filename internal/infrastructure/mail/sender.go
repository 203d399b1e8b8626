package mail

import (
	"context"

	"go.uber.org/zap"
)

// Message is a plain-text email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers outbound mail
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender logs mail instead of delivering it. Used in development when
// no SMTP host is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a sender that only logs
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message and succeeds
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("mail delivery skipped (no smtp host configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
