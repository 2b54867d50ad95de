package bookings

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
	"github.com/m04kA/barberflow/pkg/logger"
	"github.com/m04kA/barberflow/pkg/ptr"
)

var loc = time.FixedZone("MSK", 3*60*60)

type memBookings struct {
	items map[int64]*domain.Booking
}

func (m *memBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) match(f domain.BookingsFilter, b *domain.Booking) bool {
	if f.BarberID != nil && b.BarberID != *f.BarberID {
		return false
	}
	if f.From != nil && b.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && !b.StartTime.Before(*f.To) {
		return false
	}
	if f.CreatedFrom != nil && b.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	return f.IncludeCancelled || b.Status != domain.StatusCancelled
}

func (m *memBookings) List(_ context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.items {
		if m.match(f, b) {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if f.NewestFirst {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	if f.Limit > 0 && uint64(len(result)) > f.Limit {
		result = result[:f.Limit]
	}
	return result, nil
}

func (m *memBookings) Count(ctx context.Context, f domain.BookingsFilter) (int, error) {
	f.Limit = 0
	list, _ := m.List(ctx, f)
	return len(list), nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := m.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *memBookings) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(m.items, id)
	return nil
}

func rank(counts map[int64]int, names map[int64]string, limit int) []domain.RankedCount {
	result := make([]domain.RankedCount, 0, len(counts))
	for id, n := range counts {
		result = append(result, domain.RankedCount{ID: id, Name: names[id], Bookings: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bookings > result[j].Bookings })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (m *memBookings) CountByBarber(context.Context) ([]domain.RankedCount, error) {
	counts := make(map[int64]int)
	for _, b := range m.items {
		counts[b.BarberID]++
	}
	return rank(counts, map[int64]string{10: "Mad Max", 11: "Furiosa"}, 0), nil
}

func (m *memBookings) TopServices(_ context.Context, limit int) ([]domain.RankedCount, error) {
	counts := make(map[int64]int)
	names := make(map[int64]string)
	for _, b := range m.items {
		counts[b.ServiceID]++
		names[b.ServiceID] = b.ServiceName
	}
	return rank(counts, names, limit), nil
}

type fixedCount int

func (c fixedCount) CountActiveBarbers(context.Context) (int, error) { return int(c), nil }
func (c fixedCount) CountActive(context.Context) (int, error) { return int(c), nil }

type recordingPublisher struct {
	events []*events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e *events.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	admin     = &domain.User{ID: 1, Role: domain.RoleAdmin, IsActive: true}
	reception = &domain.User{ID: 2, Role: domain.RoleReceptionist, IsActive: true}
	barberA   = &domain.User{ID: 10, Role: domain.RoleBarber, IsActive: true}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, loc)
}

func newFixture() (*Service, *memBookings, *recordingPublisher) {
	repo := &memBookings{items: map[int64]*domain.Booking{
		1: {ID: 1, BarberID: 10, ServiceID: 1, ServiceName: "Haircut", CustomerName: "Ivan", StartTime: at(10, 10, 0), EndTime: at(10, 10, 30), Status: domain.StatusPending, CreatedAt: at(1, 9, 0)},
		2: {ID: 2, BarberID: 11, ServiceID: 1, ServiceName: "Haircut", CustomerName: "Petr", StartTime: at(10, 11, 0), EndTime: at(10, 11, 30), Status: domain.StatusConfirmed, CreatedAt: at(2, 9, 0)},
		3: {ID: 3, BarberID: 10, ServiceID: 2, ServiceName: "Beard", CustomerName: "Oleg", StartTime: at(11, 12, 0), EndTime: at(11, 12, 30), Status: domain.StatusCancelled, CreatedAt: at(3, 9, 0)},
		4: {ID: 4, BarberID: 10, ServiceID: 2, ServiceName: "Beard", CustomerName: "Anna", StartTime: time.Date(2025, time.April, 1, 10, 0, 0, 0, loc), EndTime: time.Date(2025, time.April, 1, 10, 30, 0, 0, loc), Status: domain.StatusCompleted, CreatedAt: at(4, 9, 0)},
	}}
	pub := &recordingPublisher{}
	svc := NewService(repo, fixedCount(3), fixedCount(5), pub, passTx{}, loc, logger.NewNop())
	svc.timeProvider = fixedTime{t: at(10, 8, 0)}
	return svc, repo, pub
}

func TestGetByID_BarberSeesOnlyOwn(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, barberA, 1)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.Time)

	_, err = svc.GetByID(ctx, barberA, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, admin, 2)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, admin, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetCalendarEvents(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	t.Run("barber filter is forced to self", func(t *testing.T) {
		evs, err := svc.GetCalendarEvents(ctx, barberA, &models.CalendarRequest{BarberID: ptr.Ptr(int64(11))})
		require.NoError(t, err)
		require.Len(t, evs, 3)
		for _, e := range evs {
			assert.Equal(t, int64(10), e.ExtendedProps.BarberID)
		}
	})

	t.Run("receptionist filters by barber and range", func(t *testing.T) {
		start, end := at(10, 0, 0), at(11, 0, 0)
		evs, err := svc.GetCalendarEvents(ctx, reception, &models.CalendarRequest{Start: &start, End: &end, BarberID: ptr.Ptr(int64(11))})
		require.NoError(t, err)
		require.Len(t, evs, 1)

		e := evs[0]
		assert.Equal(t, "Petr - Haircut", e.Title)
		assert.Equal(t, domain.StatusColors[domain.StatusConfirmed][0], e.BackgroundColor)
		assert.Equal(t, domain.CalendarTextColor, e.TextColor)
		assert.Equal(t, "2025-03-10T11:00:00+03:00", e.Start)
	})
}

func TestGetMonthBookings(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	list, err := svc.GetMonthBookings(ctx, admin, &models.MonthRequest{Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = svc.GetMonthBookings(ctx, admin, &models.MonthRequest{Year: 2025, Month: 3, Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].ID)

	_, err = svc.GetMonthBookings(ctx, admin, &models.MonthRequest{Year: 2025, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetMonthBookings(ctx, admin, &models.MonthRequest{Year: 2025, Month: 3, Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition publishes event", func(t *testing.T) {
		svc, repo, pub := newFixture()

		resp, err := svc.UpdateStatus(ctx, admin, &models.UpdateStatusRequest{BookingID: 1, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.items[1].Status)

		require.Len(t, pub.events, 1)
		assert.Equal(t, events.TypeBookingStatusChanged, pub.events[0].Type)
		assert.Equal(t, "pending", pub.events[0].PreviousStatus)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		svc, _, pub := newFixture()

		resp, err := svc.UpdateStatus(ctx, reception, &models.UpdateStatusRequest{BookingID: 2, Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
		assert.Empty(t, pub.events)
	})

	t.Run("forbidden transition", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.UpdateStatus(ctx, admin, &models.UpdateStatusRequest{BookingID: 3, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)

		_, err = svc.UpdateStatus(ctx, admin, &models.UpdateStatusRequest{BookingID: 1, Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("barber cannot change status", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.UpdateStatus(ctx, barberA, &models.UpdateStatusRequest{BookingID: 1, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status and booking", func(t *testing.T) {
		svc, _, _ := newFixture()

		_, err := svc.UpdateStatus(ctx, admin, &models.UpdateStatusRequest{BookingID: 1, Status: "done"})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		_, err = svc.UpdateStatus(ctx, admin, &models.UpdateStatusRequest{BookingID: 99, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, barberA, 1), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, admin, 1))
	assert.NotContains(t, repo.items, int64(1))
	assert.ErrorIs(t, svc.Delete(ctx, admin, 1), ErrBookingNotFound)
}

func TestGetDashboard(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	resp, err := svc.GetDashboard(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TodayBookings)
	assert.Equal(t, 1, resp.PendingBookings)
	assert.Equal(t, 4, resp.TotalBookings)
	assert.Equal(t, 3, resp.ActiveBarbers)
	assert.Equal(t, 5, resp.ActiveServices)
	require.Len(t, resp.RecentBookings, 4)
	assert.Equal(t, int64(4), resp.RecentBookings[0].ID)

	resp, err = svc.GetDashboard(ctx, barberA)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TodayBookings)
	assert.Equal(t, 3, resp.TotalBookings)
}

func TestGetStatistics(t *testing.T) {
	svc, repo, _ := newFixture()
	ctx := context.Background()

	// отмененная запись на сегодня, созданная в прошлом году
	repo.items[5] = &domain.Booking{
		ID: 5, BarberID: 11, ServiceID: 1, ServiceName: "Haircut",
		StartTime: at(10, 15, 0), EndTime: at(10, 15, 30), Status: domain.StatusCancelled,
		CreatedAt: time.Date(2024, time.December, 31, 23, 0, 0, 0, loc),
	}

	resp, err := svc.GetStatistics(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TodayBookings)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 4, resp.YearlyBookings)

	require.Len(t, resp.BarberRanking, 2)
	assert.Equal(t, models.RankedItem{ID: 10, Name: "Mad Max", Bookings: 3}, resp.BarberRanking[0])
	assert.Equal(t, models.RankedItem{ID: 11, Name: "Furiosa", Bookings: 2}, resp.BarberRanking[1])

	require.Len(t, resp.PopularServices, 2)
	assert.Equal(t, "Haircut", resp.PopularServices[0].Name)
	assert.Equal(t, 3, resp.PopularServices[0].Bookings)
}

func TestGetStatistics_AdminOnly(t *testing.T) {
	svc, _, _ := newFixture()

	for _, actor := range []*domain.User{reception, barberA} {
		_, err := svc.GetStatistics(context.Background(), actor)
		assert.ErrorIs(t, err, ErrAccessDenied)
	}
}
