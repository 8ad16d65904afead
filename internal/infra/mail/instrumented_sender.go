package mail

import (
	"context"

	"inventory/internal/domain/service"
)

const (
	emailStatusSent   = "sent"
	emailStatusQueued = "queued"
	emailStatusFailed = "failed"
)

type instrumentedSender struct {
	next    service.EmailSender
	metrics service.MetricsRecorder
	// okStatus is recorded on success; "sent" when empty.
	okStatus string
}

func (s *instrumentedSender) Send(ctx context.Context, msg service.EmailMessage) error {
	if err := s.next.Send(ctx, msg); err != nil {
		s.metrics.RecordEmail(emailStatusFailed)

		return err
	}

	status := s.okStatus
	if status == "" {
		status = emailStatusSent
	}
	s.metrics.RecordEmail(status)

	return nil
}
