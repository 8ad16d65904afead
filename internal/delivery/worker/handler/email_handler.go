// Package handler processes jobs consumed by the mail worker.
package handler

import (
	"context"
	"log/slog"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/domain/service"
	"inventory/internal/infra/mail"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// retryableError marks a failure worth one more delivery attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return "retryable: " + e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// EmailHandler delivers queued email jobs and settles each AMQP delivery.
type EmailHandler struct {
	sender service.EmailSender
	logger *slog.Logger
}

func NewEmailHandler(sender service.EmailSender, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{sender: sender, logger: logger}
}

// Handle processes one delivery and acknowledges it. Malformed jobs are dropped;
// send failures are requeued once, then dropped on redelivery.
func (h *EmailHandler) Handle(ctx context.Context, d amqp.Delivery) {
	requestID := extractRequestID(d)
	logger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("job_id", d.MessageId),
	)
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	err := h.process(ctx, d.Body)

	var ackErr error
	switch {
	case err == nil:
		logger.Info("[Worker] Email delivered")
		ackErr = d.Ack(false)
	case isRetryableError(err):
		requeue := !d.Redelivered
		logger.Warn("[Worker] Email delivery failed",
			slog.Any("error", err),
			slog.Bool("requeue", requeue),
		)
		ackErr = d.Nack(false, requeue)
	default:
		logger.Error("[Worker] Dropping malformed email job", slog.Any("error", err))
		ackErr = d.Nack(false, false)
	}

	if ackErr != nil {
		logger.Error("[Worker] Failed to settle delivery", slog.Any("error", ackErr))
	}
}

func (h *EmailHandler) process(ctx context.Context, body []byte) error {
	job, err := mail.DecodeEmailJob(body)
	if err != nil {
		return err
	}

	if err := h.sender.Send(ctx, job.Message()); err != nil {
		return &retryableError{err: err}
	}

	return nil
}

// extractRequestID prefers the header set by the publisher, then the message id.
func extractRequestID(d amqp.Delivery) string {
	if requestID, ok := d.Headers[mail.HeaderRequestID].(string); ok && requestID != "" {
		return requestID
	}

	if d.MessageId != "" {
		return d.MessageId
	}

	return uuid.NewString()
}
