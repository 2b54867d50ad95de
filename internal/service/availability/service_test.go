package availability

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	scheduleRepo "github.com/m04kA/barberflow/internal/infra/storage/schedule"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/pkg/logger"
	"github.com/m04kA/barberflow/pkg/ptr"
	"github.com/m04kA/barberflow/pkg/types"
)

const barberID int64 = 1

var loc = time.FixedZone("salon", 3*3600)

// 2025-03-10 is a Monday
func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, loc)
}

type stubSchedule struct {
	hours     map[int]*domain.WorkingHours
	vacation  *domain.Vacation
	hoursErr  error
	vacErr    error
	hoursHits int
}

func (s *stubSchedule) GetWorkingHours(_ context.Context, _ int64, dayOfWeek int) (*domain.WorkingHours, error) {
	s.hoursHits++
	if s.hoursErr != nil {
		return nil, s.hoursErr
	}
	h, ok := s.hours[dayOfWeek]
	if !ok {
		return nil, scheduleRepo.ErrWorkingHoursNotFound
	}
	return h, nil
}

func (s *stubSchedule) GetVacation(_ context.Context, _ int64) (*domain.Vacation, error) {
	if s.vacErr != nil {
		return nil, s.vacErr
	}
	if s.vacation == nil {
		return nil, scheduleRepo.ErrVacationNotFound
	}
	return s.vacation, nil
}

// stubBookings deliberately returns cancelled bookings too, the engine must skip them
type stubBookings struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (s *stubBookings) ListActiveByBarber(_ context.Context, id int64, from, to time.Time) ([]*domain.Booking, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.BarberID == id && b.StartTime.Before(to) && b.EndTime.After(from) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func mondayTenToSeven() *stubSchedule {
	return &stubSchedule{hours: map[int]*domain.WorkingHours{
		0: {BarberID: barberID, DayOfWeek: 0, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("19:00"), IsWorking: true},
	}}
}

func booking(id int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, BarberID: barberID, StartTime: start, EndTime: end, Status: status}
}

func newEngine(schedule *stubSchedule, bookings *stubBookings) *Service {
	return NewService(schedule, bookings, Config{}, logger.NewNop())
}

func slotRequest(date time.Time, now time.Time) *models.SlotRequest {
	return &models.SlotRequest{
		BarberID:        barberID,
		Date:            date,
		DurationMinutes: 30,
		IntervalMinutes: 30,
		Now:             now,
	}
}

func TestListAvailableSlots_ConcreteMonday(t *testing.T) {
	bookings := &stubBookings{bookings: []*domain.Booking{
		booking(1, at(10, 14, 0), at(10, 14, 30), domain.StatusConfirmed),
	}}
	engine := newEngine(mondayTenToSeven(), bookings)

	result, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(9, 12, 0)))
	require.NoError(t, err)

	assert.True(t, result.IsWorking)
	assert.Equal(t, "Monday", result.DayName)
	assert.Equal(t, types.TimeString("10:00"), result.WorkStart)
	assert.Equal(t, types.TimeString("19:00"), result.WorkEnd)

	all := result.Slots.All()
	// 10:00..18:30 with a 30 minute step gives 18 candidates, 14:00 is taken
	assert.Len(t, all, 17)
	assert.Equal(t, "10:00", all[0])
	assert.Equal(t, "18:30", all[len(all)-1])
	assert.Contains(t, all, "13:30")
	assert.Contains(t, all, "14:30")
	assert.NotContains(t, all, "14:00")

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, result.Slots.Morning)
	assert.Equal(t, []string{"12:00", "12:30", "13:00", "13:30", "14:30", "15:00", "15:30", "16:00", "16:30"}, result.Slots.Afternoon)
	assert.Equal(t, []string{"17:00", "17:30", "18:00", "18:30"}, result.Slots.Evening)
}

func TestListAvailableSlots_NotWorking(t *testing.T) {
	tests := []struct {
		name        string
		schedule    *stubSchedule
		date        time.Time
		wantReason  models.NotWorkingReason
		wantMessage string
	}{
		{
			name:        "no schedule row",
			schedule:    mondayTenToSeven(),
			date:        at(11, 0, 0), // Tuesday
			wantReason:  models.ReasonDayOff,
			wantMessage: "Барбер не работает в этот день (Tuesday)",
		},
		{
			name: "isWorking false",
			schedule: &stubSchedule{hours: map[int]*domain.WorkingHours{
				0: {DayOfWeek: 0, StartTime: "10:00", EndTime: "19:00", IsWorking: false},
			}},
			date:        at(10, 0, 0),
			wantReason:  models.ReasonDayOff,
			wantMessage: "Барбер не работает в этот день (Monday)",
		},
		{
			name: "vacation overrides working hours",
			schedule: func() *stubSchedule {
				s := mondayTenToSeven()
				s.vacation = &domain.Vacation{BarberID: barberID, StartDate: at(8, 0, 0), EndDate: at(10, 0, 0)}
				return s
			}(),
			date:        at(10, 0, 0),
			wantReason:  models.ReasonVacation,
			wantMessage: "Барбер в отпуске, вернётся 11/03/2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(tt.schedule, &stubBookings{})

			result, err := engine.ListAvailableSlots(context.Background(), slotRequest(tt.date, at(1, 9, 0)))
			require.NoError(t, err)

			assert.False(t, result.IsWorking)
			assert.Equal(t, tt.wantReason, result.Reason)
			assert.Equal(t, tt.wantMessage, result.Message)
			assert.Zero(t, result.Slots.Total())
			assert.NotNil(t, result.Slots.Morning)
		})
	}
}

func TestListAvailableSlots_VacationReturnDate(t *testing.T) {
	s := mondayTenToSeven()
	s.vacation = &domain.Vacation{BarberID: barberID, StartDate: at(10, 0, 0), EndDate: at(14, 0, 0)}
	engine := newEngine(s, &stubBookings{})

	result, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(1, 9, 0)))
	require.NoError(t, err)

	require.NotNil(t, result.ReturnDate)
	assert.Equal(t, at(15, 0, 0), *result.ReturnDate)
	assert.Zero(t, s.hoursHits, "working hours are not consulted during vacation")
}

func TestListAvailableSlots_VacationOutsideDateIgnored(t *testing.T) {
	s := mondayTenToSeven()
	s.vacation = &domain.Vacation{BarberID: barberID, StartDate: at(1, 0, 0), EndDate: at(9, 0, 0)}
	engine := newEngine(s, &stubBookings{})

	result, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(1, 9, 0)))
	require.NoError(t, err)
	assert.True(t, result.IsWorking)
	assert.Equal(t, 18, result.Slots.Total())
}

func TestListAvailableSlots_DropsPastAndCurrentInstant(t *testing.T) {
	engine := newEngine(mondayTenToSeven(), &stubBookings{})

	// now is exactly 12:00 on the same day: 12:00 itself is not bookable
	result, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(10, 12, 0)))
	require.NoError(t, err)

	all := result.Slots.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "12:30", all[0])
	assert.Empty(t, result.Slots.Morning)
	for _, slot := range all {
		ts, err := types.NewTimeStringFromString(slot)
		require.NoError(t, err)
		dt, err := ts.On(at(10, 0, 0))
		require.NoError(t, err)
		assert.True(t, dt.After(at(10, 12, 0)), slot)
	}
}

func TestListAvailableSlots_NoOverlapWithBlockingBookings(t *testing.T) {
	bookings := &stubBookings{bookings: []*domain.Booking{
		booking(1, at(10, 10, 15), at(10, 11, 0), domain.StatusPending),
		booking(2, at(10, 15, 0), at(10, 16, 0), domain.StatusCompleted),
		booking(3, at(10, 17, 0), at(10, 18, 0), domain.StatusCancelled),
		{ID: 4, BarberID: 99, StartTime: at(10, 12, 0), EndTime: at(10, 13, 0), Status: domain.StatusConfirmed},
	}}
	engine := newEngine(mondayTenToSeven(), bookings)

	req := slotRequest(at(10, 0, 0), at(9, 9, 0))
	req.DurationMinutes = 45
	result, err := engine.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)

	all := result.Slots.All()
	for _, slot := range all {
		ts := types.TimeString(slot)
		start, err := ts.On(at(10, 0, 0))
		require.NoError(t, err)
		end := start.Add(45 * time.Minute)
		for _, b := range bookings.bookings[:2] {
			assert.False(t, b.Overlaps(start, end), "slot %s overlaps booking %d", slot, b.ID)
		}
	}

	// 10:00 and 10:30 run into the 10:15-11:00 booking, 11:00 only touches it
	assert.NotContains(t, all, "10:00")
	assert.NotContains(t, all, "10:30")
	assert.Contains(t, all, "11:00")
	// 14:30+45 overlaps 15:00-16:00 (completed still blocks)
	assert.NotContains(t, all, "14:30")
	assert.Contains(t, all, "16:00")
	// cancelled and foreign bookings do not block
	assert.Contains(t, all, "17:00")
	assert.Contains(t, all, "12:00")
}

func TestListAvailableSlots_PartitionIsCompleteAndOrdered(t *testing.T) {
	s := &stubSchedule{hours: map[int]*domain.WorkingHours{
		0: {StartTime: "08:00", EndTime: "21:00", IsWorking: true},
	}}
	engine := newEngine(s, &stubBookings{})

	req := slotRequest(at(10, 0, 0), at(9, 9, 0))
	req.IntervalMinutes = 20
	result, err := engine.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)

	check := func(bucket []string, minHour, maxHour int) {
		prev := ""
		for _, slot := range bucket {
			ts := types.TimeString(slot)
			m, err := ts.Minutes()
			require.NoError(t, err)
			hour := m / 60
			assert.GreaterOrEqual(t, hour, minHour, slot)
			assert.Less(t, hour, maxHour, slot)
			assert.Greater(t, slot, prev)
			prev = slot
		}
	}
	check(result.Slots.Morning, 0, 12)
	check(result.Slots.Afternoon, 12, 17)
	check(result.Slots.Evening, 17, 24)

	// 08:00..20:40 every 20 minutes
	assert.Equal(t, 39, result.Slots.Total())
	assert.Equal(t, "11:40", result.Slots.Morning[len(result.Slots.Morning)-1])
	assert.Equal(t, "12:00", result.Slots.Afternoon[0])
	assert.Equal(t, "17:00", result.Slots.Evening[0])
}

func TestListAvailableSlots_LastSlotMayOverrunClosing(t *testing.T) {
	engine := newEngine(mondayTenToSeven(), &stubBookings{})

	req := slotRequest(at(10, 0, 0), at(9, 9, 0))
	req.DurationMinutes = 60
	result, err := engine.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, result.Slots.Evening, "18:30")

	strict := NewService(mondayTenToSeven(), &stubBookings{}, Config{StrictClosingTime: true}, logger.NewNop())
	result, err = strict.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, result.Slots.Evening, "18:30")
	assert.Equal(t, "18:00", result.Slots.Evening[len(result.Slots.Evening)-1])
}

func TestListAvailableSlots_Idempotent(t *testing.T) {
	bookings := &stubBookings{bookings: []*domain.Booking{
		booking(1, at(10, 11, 0), at(10, 12, 0), domain.StatusConfirmed),
	}}
	engine := newEngine(mondayTenToSeven(), bookings)
	req := slotRequest(at(10, 0, 0), at(9, 9, 0))

	first, err := engine.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.ListAvailableSlots(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, bookings.calls, "no caching between calls")
}

func TestListAvailableSlots_Validation(t *testing.T) {
	engine := newEngine(mondayTenToSeven(), &stubBookings{})

	tests := []struct {
		name   string
		mutate func(r *models.SlotRequest)
	}{
		{"past date", func(r *models.SlotRequest) { r.Now = at(11, 8, 0) }},
		{"zero duration", func(r *models.SlotRequest) { r.DurationMinutes = 0 }},
		{"negative interval", func(r *models.SlotRequest) { r.IntervalMinutes = -30 }},
		{"no barber", func(r *models.SlotRequest) { r.BarberID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := slotRequest(at(10, 0, 0), at(9, 9, 0))
			tt.mutate(req)

			_, err := engine.ListAvailableSlots(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestListAvailableSlots_TodayIsNotPast(t *testing.T) {
	engine := newEngine(mondayTenToSeven(), &stubBookings{})

	result, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(10, 20, 0)))
	require.NoError(t, err)
	assert.True(t, result.IsWorking)
	assert.Zero(t, result.Slots.Total())
}

func TestListAvailableSlots_StorageErrors(t *testing.T) {
	boom := errors.New("connection reset")

	engine := newEngine(&stubSchedule{hoursErr: boom}, &stubBookings{})
	_, err := engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(9, 9, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, boom)

	engine = newEngine(mondayTenToSeven(), &stubBookings{err: boom})
	_, err = engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(9, 9, 0)))
	assert.ErrorIs(t, err, ErrInternal)

	s := mondayTenToSeven()
	s.vacErr = boom
	engine = newEngine(s, &stubBookings{})
	_, err = engine.ListAvailableSlots(context.Background(), slotRequest(at(10, 0, 0), at(9, 9, 0)))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestIsIntervalAvailable(t *testing.T) {
	bookings := &stubBookings{bookings: []*domain.Booking{
		booking(7, at(10, 10, 0), at(10, 10, 30), domain.StatusConfirmed),
		booking(8, at(10, 12, 0), at(10, 12, 30), domain.StatusCancelled),
		booking(9, at(10, 15, 0), at(10, 16, 0), domain.StatusPending),
	}}
	engine := newEngine(mondayTenToSeven(), bookings)

	tests := []struct {
		name         string
		start, end   time.Time
		exclude      *int64
		wantFree     bool
		wantConflict int64
	}{
		{name: "exact overlap", start: at(10, 10, 0), end: at(10, 10, 30), wantConflict: 7},
		{name: "own booking excluded", start: at(10, 10, 0), end: at(10, 10, 30), exclude: ptr.Ptr(int64(7)), wantFree: true},
		{name: "other id excluded still conflicts", start: at(10, 10, 0), end: at(10, 10, 30), exclude: ptr.Ptr(int64(9)), wantConflict: 7},
		{name: "cancelled does not block", start: at(10, 12, 0), end: at(10, 12, 30), wantFree: true},
		{name: "touching end", start: at(10, 10, 30), end: at(10, 11, 0), wantFree: true},
		{name: "touching start", start: at(10, 9, 30), end: at(10, 10, 0), wantFree: true},
		{name: "contained", start: at(10, 15, 15), end: at(10, 15, 45), wantConflict: 9},
		{name: "enclosing", start: at(10, 14, 0), end: at(10, 17, 0), wantConflict: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.IsIntervalAvailable(context.Background(), &models.IntervalRequest{
				BarberID:         barberID,
				Start:            tt.start,
				End:              tt.end,
				ExcludeBookingID: tt.exclude,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFree, result.Available)
			if tt.wantFree {
				assert.Nil(t, result.ConflictingBookingID)
				return
			}
			require.NotNil(t, result.ConflictingBookingID)
			assert.Equal(t, tt.wantConflict, *result.ConflictingBookingID)
		})
	}
}

func TestIsIntervalAvailable_InvalidInterval(t *testing.T) {
	engine := newEngine(mondayTenToSeven(), &stubBookings{})

	_, err := engine.IsIntervalAvailable(context.Background(), &models.IntervalRequest{
		BarberID: barberID, Start: at(10, 11, 0), End: at(10, 11, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = engine.IsIntervalAvailable(context.Background(), &models.IntervalRequest{
		BarberID: barberID, Start: at(10, 11, 0), End: at(10, 10, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGetWorkingDay_InvalidRowTreatedAsDayOff(t *testing.T) {
	s := &stubSchedule{hours: map[int]*domain.WorkingHours{
		0: {StartTime: "19:00", EndTime: "10:00", IsWorking: true},
	}}
	engine := newEngine(s, &stubBookings{})

	day, err := engine.GetWorkingDay(context.Background(), barberID, at(10, 15, 0))
	require.NoError(t, err)
	assert.False(t, day.IsWorking)
	assert.Equal(t, at(10, 0, 0), day.Date)
}
