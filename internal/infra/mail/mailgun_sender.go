package mail

import (
	"context"
	"log/slog"
	"time"

	"inventory/internal/domain/service"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
)

const defaultMailgunTimeout = 10 * time.Second

// MailgunSender delivers plain-text messages through the Mailgun API.
type MailgunSender struct {
	client  *mg.MailgunImpl
	from    string
	timeout time.Duration
	logger  *slog.Logger
}

// NewMailgunSender creates a sender for the given domain.
func NewMailgunSender(domain, apiKey, from string, timeout time.Duration, logger *slog.Logger) (*MailgunSender, error) {
	if domain == "" || apiKey == "" {
		return nil, errors.New("mailgun domain and api key are required")
	}
	if from == "" {
		return nil, errors.New("mail sender address is required")
	}
	if timeout <= 0 {
		timeout = defaultMailgunTimeout
	}

	return &MailgunSender{
		client:  mg.NewMailgun(domain, apiKey),
		from:    from,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (s *MailgunSender) Send(ctx context.Context, msg service.EmailMessage) error {
	message := s.client.NewMessage(s.from, msg.Subject, msg.Body, msg.To)

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, id, err := s.client.Send(sendCtx, message)
	if err != nil {
		return errors.Wrap(err, "mailgun send")
	}

	s.logger.DebugContext(ctx, "Email accepted by Mailgun",
		slog.String("message_id", id),
		slog.String("to", msg.To),
	)

	return nil
}
