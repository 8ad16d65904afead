package mail

import (
	"context"
	"log/slog"

	"inventory/internal/domain/service"
)

// logSender writes messages to the log instead of delivering them.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender for local development.
func NewLogSender(logger *slog.Logger) service.EmailSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg service.EmailMessage) error {
	s.logger.InfoContext(ctx, "[LogMail] Email not delivered, provider is log",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
