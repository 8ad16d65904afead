package mail

import (
	"context"
	"log/slog"
	"sync"

	"inventory/internal/domain/lifecycle"
	"inventory/internal/domain/service"
)

// asyncSender hands each message to a goroutine so the caller never waits on the provider.
// Close blocks until in-flight sends finish.
type asyncSender struct {
	next   service.EmailSender
	logger *slog.Logger
	wg     sync.WaitGroup
}

func newAsyncSender(next service.EmailSender, logger *slog.Logger) *asyncSender {
	return &asyncSender{next: next, logger: logger}
}

func (s *asyncSender) Send(ctx context.Context, msg service.EmailMessage) error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
		defer cancel()

		if err := s.next.Send(sendCtx, msg); err != nil {
			s.logger.Error("Failed to send email",
				slog.String("to", msg.To),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

func (s *asyncSender) Close() error {
	s.wg.Wait()

	return nil
}
