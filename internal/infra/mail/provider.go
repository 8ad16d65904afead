package mail

import (
	"context"
	"io"
	"log/slog"

	"inventory/config"
	"inventory/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for EmailSender, injected by Fx
type SenderParams struct {
	fx.In

	Lc      fx.Lifecycle
	Config  *config.Config
	Logger  *slog.Logger
	Metrics service.MetricsRecorder
}

// NewEmailSender creates an EmailSender based on configuration
func NewEmailSender(params SenderParams) (service.EmailSender, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" || cfg.Provider == config.MailProviderLog {
		logger.Info("Mail provider not configured, using log sender")

		return &instrumentedSender{next: NewLogSender(logger), metrics: params.Metrics}, nil
	}

	var (
		sender service.EmailSender
		closer io.Closer
	)

	switch cfg.Provider {
	case config.MailProviderMailgun:
		mailgun, err := NewMailgunSender(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.From, cfg.Mailgun.Timeout, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Mailgun email sender",
			slog.String("domain", cfg.Mailgun.Domain),
		)

		// count the real outcome inside the goroutine
		async := newAsyncSender(&instrumentedSender{next: mailgun, metrics: params.Metrics}, logger)
		sender, closer = async, async

	case config.MailProviderRabbitMQ:
		publisher, err := NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Using RabbitMQ email publisher",
			slog.String("queue", cfg.RabbitMQ.Queue),
		)

		sender, closer = &instrumentedSender{next: publisher, metrics: params.Metrics, okStatus: emailStatusQueued}, publisher

	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing EmailSender")

			return closer.Close()
		},
	})

	return sender, nil
}

// NewWorkerSender creates the synchronous Mailgun sender used by the mail worker,
// so failures reach the consumer and drive redelivery.
func NewWorkerSender(params SenderParams) (service.EmailSender, error) {
	cfg := params.Config.Mail

	mailgun, err := NewMailgunSender(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.From, cfg.Mailgun.Timeout, params.Logger)
	if err != nil {
		return nil, err
	}

	return &instrumentedSender{next: mailgun, metrics: params.Metrics}, nil
}

// Module provides the mail FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEmailSender),
)
