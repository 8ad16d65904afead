package mail

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"inventory/internal/domain/service"
	mockSvc "inventory/internal/mocks/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeEmailJob(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    EmailJob
		wantErr bool
	}{
		{
			name: "valid job",
			body: `{"id":"42","to":"jane@example.com","subject":"Hi","text":"Body"}`,
			want: EmailJob{ID: "42", To: "jane@example.com", Subject: "Hi", Text: "Body"},
		},
		{
			name:    "not json",
			body:    `not-json`,
			wantErr: true,
		},
		{
			name:    "missing recipient",
			body:    `{"id":"1","subject":"Hi"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := DecodeEmailJob([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, job)
		})
	}
}

func TestEmailJob_MessageRoundTrip(t *testing.T) {
	msg := service.EmailMessage{To: "a@b.c", Subject: "S", Body: "B"}

	job := NewEmailJob("id-1", msg)

	assert.Equal(t, "id-1", job.ID)
	assert.Equal(t, msg, job.Message())
}

func TestInstrumentedSender_RecordsOutcome(t *testing.T) {
	ctx := context.Background()
	msg := service.EmailMessage{To: "a@b.c"}

	next := mockSvc.NewMockEmailSender(t)
	metrics := mockSvc.NewMockMetricsRecorder(t)
	sender := &instrumentedSender{next: next, metrics: metrics}

	next.EXPECT().Send(ctx, msg).Return(nil).Once()
	metrics.EXPECT().RecordEmail(emailStatusSent).Return().Once()
	require.NoError(t, sender.Send(ctx, msg))

	next.EXPECT().Send(ctx, msg).Return(errors.New("boom")).Once()
	metrics.EXPECT().RecordEmail(emailStatusFailed).Return().Once()
	require.Error(t, sender.Send(ctx, msg))
}

func TestInstrumentedSender_QueuedStatus(t *testing.T) {
	ctx := context.Background()
	msg := service.EmailMessage{To: "a@b.c"}

	next := mockSvc.NewMockEmailSender(t)
	metrics := mockSvc.NewMockMetricsRecorder(t)
	sender := &instrumentedSender{next: next, metrics: metrics, okStatus: emailStatusQueued}

	next.EXPECT().Send(ctx, msg).Return(nil).Once()
	metrics.EXPECT().RecordEmail(emailStatusQueued).Return().Once()
	require.NoError(t, sender.Send(ctx, msg))
}

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) Send(context.Context, service.EmailMessage) error {
	s.calls.Add(1)

	return s.err
}

func TestAsyncSender_NeverReturnsProviderError(t *testing.T) {
	next := &countingSender{err: errors.New("provider down")}
	sender := newAsyncSender(next, newDiscardLogger())

	for range 3 {
		require.NoError(t, sender.Send(context.Background(), service.EmailMessage{To: "a@b.c"}))
	}
	require.NoError(t, sender.Close())

	assert.Equal(t, int32(3), next.calls.Load())
}

func TestAsyncSender_SurvivesCanceledRequestContext(t *testing.T) {
	next := mockSvc.NewMockEmailSender(t)
	next.EXPECT().
		Send(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ service.EmailMessage) error {
			return ctx.Err()
		}).
		Once()

	metrics := mockSvc.NewMockMetricsRecorder(t)
	metrics.EXPECT().RecordEmail(emailStatusSent).Return().Once()

	ctx, cancel := context.WithCancel(context.Background())
	sender := newAsyncSender(&instrumentedSender{next: next, metrics: metrics}, newDiscardLogger())
	require.NoError(t, sender.Send(ctx, service.EmailMessage{To: "a@b.c"}))
	cancel()
	require.NoError(t, sender.Close())
}

func TestNewMailgunSender_RequiresSettings(t *testing.T) {
	_, err := NewMailgunSender("", "key", "from@example.com", 0, newDiscardLogger())
	require.Error(t, err)

	_, err = NewMailgunSender("mg.example.com", "key", "", 0, newDiscardLogger())
	require.Error(t, err)

	sender, err := NewMailgunSender("mg.example.com", "key", "from@example.com", 0, newDiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, defaultMailgunTimeout, sender.timeout)
}

func TestLogSender_AcceptsEveryMessage(t *testing.T) {
	sender := NewLogSender(newDiscardLogger())

	assert.NoError(t, sender.Send(context.Background(), service.EmailMessage{To: "a@b.c", Subject: "Hi"}))
}

type fakeSession struct {
	closed    bool
	failWith  error
	published []amqp.Publishing
	closes    int
}

func (s *fakeSession) PublishWithContext(_ context.Context, _, _ string, _, _ bool, msg amqp.Publishing) error {
	if s.failWith != nil {
		s.closed = true

		return s.failWith
	}
	s.published = append(s.published, msg)

	return nil
}

func (s *fakeSession) IsClosed() bool { return s.closed }

func (s *fakeSession) Close() error {
	s.closes++

	return nil
}

func newFakeDialer(sessions ...*fakeSession) (dialFunc, *int) {
	dials := 0

	return func() (publishSession, error) {
		if dials >= len(sessions) {
			return nil, errors.New("connection refused")
		}
		session := sessions[dials]
		dials++

		return session, nil
	}, &dials
}

func TestRabbitMQPublisher_ReconnectsClosedSession(t *testing.T) {
	first, second := &fakeSession{}, &fakeSession{}
	dial, dials := newFakeDialer(first, second)

	publisher, err := newRabbitMQPublisher(dial, "email_jobs", newDiscardLogger())
	require.NoError(t, err)

	msg := service.EmailMessage{To: "alice@example.com", Subject: "Welcome", Body: "Hi"}
	require.NoError(t, publisher.Send(context.Background(), msg))
	require.Len(t, first.published, 1)

	first.closed = true
	require.NoError(t, publisher.Send(context.Background(), msg))

	assert.Equal(t, 2, *dials)
	assert.Equal(t, 1, first.closes)
	require.Len(t, second.published, 1)
	assert.Equal(t, amqp.Persistent, second.published[0].DeliveryMode)

	require.NoError(t, publisher.Close())
	assert.Equal(t, 1, second.closes)
}

func TestRabbitMQPublisher_RetriesOnceAfterClosedError(t *testing.T) {
	first, second := &fakeSession{failWith: amqp.ErrClosed}, &fakeSession{}
	dial, dials := newFakeDialer(first, second)

	publisher, err := newRabbitMQPublisher(dial, "email_jobs", newDiscardLogger())
	require.NoError(t, err)

	require.NoError(t, publisher.Send(context.Background(), service.EmailMessage{To: "bob@example.com"}))
	assert.Equal(t, 2, *dials)
	assert.Len(t, second.published, 1)
}

func TestRabbitMQPublisher_BrokerStillDown(t *testing.T) {
	first := &fakeSession{}
	dial, _ := newFakeDialer(first)

	publisher, err := newRabbitMQPublisher(dial, "email_jobs", newDiscardLogger())
	require.NoError(t, err)

	first.closed = true
	err = publisher.Send(context.Background(), service.EmailMessage{To: "carol@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconnect to rabbitmq")

	// next attempt dials again instead of reusing a dead session
	err = publisher.Send(context.Background(), service.EmailMessage{To: "carol@example.com"})
	require.Error(t, err)
}
