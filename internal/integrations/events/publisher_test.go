package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/logger"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	err     error
	started chan struct{}
	release chan struct{}
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.started != nil {
		w.started <- struct{}{}
		<-w.release
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type countingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *countingLogger) Info(string, ...interface{}) {}

func (l *countingLogger) Warn(string, ...interface{}) {}

func (l *countingLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, "bookings", time.Second, 8, logger.NewNop())

	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:        42,
		BarberID:  3,
		ServiceID: 5,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    domain.StatusPending,
	}

	require.NoError(t, p.Publish(context.Background(), NewBookingEvent(TypeBookingCreated, booking, start)))
	require.NoError(t, p.Close())

	require.Len(t, w.msgs, 1)
	assert.True(t, w.closed)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))

	var got BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, TypeBookingCreated, got.Type)
	assert.Equal(t, int64(42), got.BookingID)
	assert.Equal(t, "pending", got.Status)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Equal(t, got.ID, string(msg.Headers[0].Value))
}

func TestPublisher_DoesNotWaitForBroker(t *testing.T) {
	w := &fakeWriter{started: make(chan struct{}), release: make(chan struct{})}
	p := newPublisher(w, "bookings", time.Second, 1, logger.NewNop())

	require.NoError(t, p.Publish(context.Background(), &BookingEvent{Type: TypeBookingCreated, BookingID: 1}))
	<-w.started

	// первое событие застряло в брокере, второе ждет в очереди
	require.NoError(t, p.Publish(context.Background(), &BookingEvent{Type: TypeBookingCreated, BookingID: 2}))

	err := p.Publish(context.Background(), &BookingEvent{Type: TypeBookingCreated, BookingID: 3})
	assert.ErrorIs(t, err, ErrQueueFull)

	go func() {
		<-w.started
	}()
	close(w.release)
	require.NoError(t, p.Close())

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "1", string(w.msgs[0].Key))
	assert.Equal(t, "2", string(w.msgs[1].Key))
}

func TestPublisher_DeliveryErrorLoggedOnce(t *testing.T) {
	log := &countingLogger{}
	p := newPublisher(&fakeWriter{err: errors.New("broker down")}, "bookings", time.Second, 8, log)

	err := p.Publish(context.Background(), &BookingEvent{Type: TypeBookingRescheduled, BookingID: 1})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "booking.rescheduled")
	assert.Contains(t, log.errors[0], "broker down")
}

func TestPublisher_PublishAfterClose(t *testing.T) {
	p := newPublisher(&fakeWriter{}, "bookings", time.Second, 8, logger.NewNop())
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), &BookingEvent{Type: TypeBookingCreated, BookingID: 1})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}
