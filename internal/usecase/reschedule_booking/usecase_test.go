package reschedule_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/pkg/logger"
)

var loc = time.FixedZone("MSK", 3*60*60)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, loc)
}

type memRepo struct {
	items map[int64]*domain.Booking
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) UpdateTime(_ context.Context, id int64, start, end time.Time) error {
	b, ok := r.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.StartTime, b.EndTime = start, end
	return nil
}

// overlapEngine проверяет пересечения по memRepo
type overlapEngine struct {
	repo *memRepo
	last *models.IntervalRequest
}

func (e *overlapEngine) IsIntervalAvailable(_ context.Context, req *models.IntervalRequest) (*models.IntervalAvailability, error) {
	e.last = req
	for _, b := range e.repo.items {
		if b.BarberID != req.BarberID || !b.BlocksTime() {
			continue
		}
		if req.ExcludeBookingID != nil && b.ID == *req.ExcludeBookingID {
			continue
		}
		if b.Overlaps(req.Start, req.End) {
			id := b.ID
			return &models.IntervalAvailability{Available: false, ConflictingBookingID: &id}, nil
		}
	}
	return &models.IntervalAvailability{Available: true}, nil
}

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []*events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e *events.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

type recordingMetrics struct {
	conflicts []string
}

func (m *recordingMetrics) IncBookingConflict(op string) { m.conflicts = append(m.conflicts, op) }

var (
	admin  = &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}
	barber = &domain.User{ID: 7, Role: domain.RoleBarber, IsActive: true}
)

func newFixture() (*UseCase, *memRepo, *overlapEngine, *recordingPublisher, *recordingMetrics) {
	repo := &memRepo{items: map[int64]*domain.Booking{
		1: {ID: 1, BarberID: 7, StartTime: at(10, 0), EndTime: at(10, 30), Status: domain.StatusPending},
		2: {ID: 2, BarberID: 7, StartTime: at(11, 0), EndTime: at(12, 0), Status: domain.StatusConfirmed},
		3: {ID: 3, BarberID: 7, StartTime: at(13, 0), EndTime: at(13, 30), Status: domain.StatusCompleted},
		4: {ID: 4, BarberID: 7, StartTime: at(15, 0), EndTime: at(15, 30), Status: domain.StatusCancelled},
	}}
	engine := &overlapEngine{repo: repo}
	pub := &recordingPublisher{}
	m := &recordingMetrics{}
	uc := NewUseCase(repo, engine, passTx{}, pub, m, loc, logger.NewNop())
	return uc, repo, engine, pub, m
}

func TestExecute_MovesBooking(t *testing.T) {
	uc, repo, engine, pub, _ := newFixture()

	resp, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: 1, Start: at(12, 0), End: at(12, 30)})
	require.NoError(t, err)

	assert.Equal(t, at(10, 0), resp.OldStart)
	assert.Equal(t, at(12, 0), repo.items[1].StartTime)
	require.NotNil(t, engine.last.ExcludeBookingID)
	assert.Equal(t, int64(1), *engine.last.ExcludeBookingID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeBookingRescheduled, pub.events[0].Type)
}

func TestExecute_OverlapWithOwnIntervalAllowed(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	// сдвиг на 15 минут пересекается только с самим собой
	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: 2, Start: at(11, 15), End: at(12, 15)})
	assert.NoError(t, err)
}

func TestExecute_IntoCancelledSlotAllowed(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: 1, Start: at(15, 0), End: at(15, 30)})
	assert.NoError(t, err)
}

func TestExecute_Conflict(t *testing.T) {
	uc, repo, _, pub, m := newFixture()

	_, err := uc.Execute(context.Background(), &Request{Actor: admin, BookingID: 1, Start: at(11, 30), End: at(12, 0)})

	var conflict *SlotConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.BookingID)
	assert.Equal(t, "reschedule_booking: time is taken (booking #2)", conflict.Error())
	assert.Equal(t, at(10, 0), repo.items[1].StartTime)
	assert.Empty(t, pub.events)
	assert.Equal(t, []string{"reschedule"}, m.conflicts)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"barber role", &Request{Actor: barber, BookingID: 1, Start: at(12, 0), End: at(12, 30)}, ErrAccessDenied},
		{"no actor", &Request{BookingID: 1, Start: at(12, 0), End: at(12, 30)}, ErrAccessDenied},
		{"end before start", &Request{Actor: admin, BookingID: 1, Start: at(12, 30), End: at(12, 0)}, ErrInvalidInput},
		{"not found", &Request{Actor: admin, BookingID: 99, Start: at(12, 0), End: at(12, 30)}, ErrBookingNotFound},
		{"completed", &Request{Actor: admin, BookingID: 3, Start: at(16, 0), End: at(16, 30)}, ErrCannotReschedule},
		{"cancelled", &Request{Actor: admin, BookingID: 4, Start: at(16, 0), End: at(16, 30)}, ErrCannotReschedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _, _ := newFixture()
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
