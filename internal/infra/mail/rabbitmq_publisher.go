package mail

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HeaderRequestID carries the originating HTTP request id to the worker.
const HeaderRequestID = "request_id"

// publishSession is one broker connection with a channel ready to publish.
type publishSession interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func() (publishSession, error)

// RabbitMQPublisher queues messages for the mail worker. A session closed by the
// broker is replaced on the next Send.
type RabbitMQPublisher struct {
	mu      sync.Mutex
	session publishSession
	dial    dialFunc
	queue   string
	logger  *slog.Logger
}

// NewRabbitMQPublisher dials the broker and declares a durable queue.
func NewRabbitMQPublisher(url, queue string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	return newRabbitMQPublisher(func() (publishSession, error) {
		session, err := dialSession(url, queue, logger)
		if err != nil {
			return nil, err
		}

		return session, nil
	}, queue, logger)
}

func newRabbitMQPublisher(dial dialFunc, queue string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	session, err := dial()
	if err != nil {
		return nil, err
	}

	return &RabbitMQPublisher{session: session, dial: dial, queue: queue, logger: logger}, nil
}

// DeclareQueue declares the durable mail queue shared by publisher and worker.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)

	return errors.Wrapf(err, "declare queue %s", queue)
}

func (p *RabbitMQPublisher) Send(ctx context.Context, msg service.EmailMessage) error {
	job := NewEmailJob(uuid.NewString(), msg)

	body, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "encode email job")
	}

	var headers amqp.Table
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		headers = amqp.Table{HeaderRequestID: requestID}
	}

	publishing := amqp.Publishing{
		Headers:      headers,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.publishLocked(ctx, publishing)
	if errors.Is(err, amqp.ErrClosed) {
		p.logger.WarnContext(ctx, "RabbitMQ session closed during publish, retrying", slog.String("job_id", job.ID))
		err = p.publishLocked(ctx, publishing)
	}
	if err != nil {
		return errors.Wrap(err, "publish email job")
	}

	p.logger.DebugContext(ctx, "Email job queued",
		slog.String("job_id", job.ID),
		slog.String("queue", p.queue),
	)

	return nil
}

func (p *RabbitMQPublisher) publishLocked(ctx context.Context, publishing amqp.Publishing) error {
	if p.session == nil || p.session.IsClosed() {
		if p.session != nil {
			_ = p.session.Close()
			p.session = nil
		}

		session, err := p.dial()
		if err != nil {
			return errors.Wrap(err, "reconnect to rabbitmq")
		}
		p.session = session
		p.logger.InfoContext(ctx, "Reconnected to RabbitMQ", slog.String("queue", p.queue))
	}

	return p.session.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		publishing,
	)
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil
	}
	err := p.session.Close()
	p.session = nil

	return err
}

type amqpSession struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func dialSession(url, queue string, logger *slog.Logger) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "amqp dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "amqp channel")
	}

	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, err
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		// nil on a graceful Close
		if amqpErr, ok := <-closed; ok && amqpErr != nil {
			logger.Warn("RabbitMQ connection lost",
				slog.Int("code", amqpErr.Code),
				slog.String("reason", amqpErr.Reason),
			)
		}
	}()

	return &amqpSession{conn: conn, ch: ch}, nil
}

func (s *amqpSession) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return s.ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

func (s *amqpSession) IsClosed() bool {
	return s.conn.IsClosed() || s.ch.IsClosed()
}

func (s *amqpSession) Close() error {
	_ = s.ch.Close()

	if err := s.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return errors.WithStack(err)
	}

	return nil
}
