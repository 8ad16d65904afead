package worker

import (
	"context"
	"log/slog"
	"sync"

	"inventory/config"
	"inventory/internal/delivery"
	"inventory/internal/delivery/worker/handler"
	"inventory/internal/infra/mail"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const defaultPrefetch = 16

// ConsumerParams holds dependencies for the email queue consumer
type ConsumerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	EmailHandler *handler.EmailHandler
}

type emailConsumer struct {
	url      string
	queue    string
	prefetch int
	logger   *slog.Logger
	handler  *handler.EmailHandler

	mu     sync.Mutex
	conn   *amqp.Connection
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumer creates the RabbitMQ consumer delivering queued welcome emails.
func NewConsumer(params ConsumerParams) (delivery.Delivery, error) {
	rabbit := params.Cfg.Mail.RabbitMQ
	if rabbit.URL == "" {
		return nil, errors.New("mail.rabbitmq.url is required for the mail worker")
	}

	prefetch := params.Cfg.Mail.Worker.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	consumer := &emailConsumer{
		url:      rabbit.URL,
		queue:    rabbit.Queue,
		prefetch: prefetch,
		logger:   params.Logger,
		handler:  params.EmailHandler,
		done:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: consumer.stop,
	})

	return consumer, nil
}

// Serve consumes until the connection closes or the worker stops.
func (s *emailConsumer) Serve(ctx context.Context) error {
	defer close(s.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return errors.Wrap(err, "amqp dial")
	}

	s.mu.Lock()
	s.conn = conn
	s.cancel = cancel
	s.mu.Unlock()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "amqp channel")
	}

	if err := ch.Qos(s.prefetch, 0, false); err != nil {
		return errors.Wrap(err, "amqp qos")
	}

	if err := mail.DeclareQueue(ch, s.queue); err != nil {
		return err
	}

	msgs, err := ch.Consume(s.queue,
		"",    // consumer tag
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "amqp consume")
	}

	s.logger.Info("Email worker listening", slog.String("queue", s.queue), slog.Int("prefetch", s.prefetch))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				if conn.IsClosed() && ctx.Err() == nil {
					return errors.New("amqp connection closed")
				}

				return nil
			}
			s.handler.Handle(ctx, msg)
		}
	}
}

func (s *emailConsumer) stop(ctx context.Context) error {
	s.mu.Lock()
	conn, cancel := s.conn, s.cancel
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	s.logger.Info("Stopping email worker")
	cancel()

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return errors.WithStack(conn.Close())
}
