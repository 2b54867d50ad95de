package domain

import (
	"time"

	"github.com/m04kA/barberflow/pkg/types"
)

// WorkingHours recurring availability of a barber for one weekday.
// DayOfWeek: 0 = Monday ... 6 = Sunday.
type WorkingHours struct {
	ID        int64
	BarberID  int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	IsWorking bool
}

// IsValid checks StartTime < EndTime for working days
func (w *WorkingHours) IsValid() bool {
	if !w.IsWorking {
		return true
	}
	if w.StartTime.Validate() != nil || w.EndTime.Validate() != nil {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// Vacation date range (inclusive) when a barber takes no bookings
type Vacation struct {
	BarberID  int64
	StartDate time.Time
	EndDate   time.Time
}

// Covers reports whether the calendar date of day falls within [StartDate, EndDate].
// Only calendar dates are compared, locations are ignored.
func (v *Vacation) Covers(day time.Time) bool {
	d := dateKey(day)
	return d >= dateKey(v.StartDate) && d <= dateKey(v.EndDate)
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// ReturnDate first day the barber is back
func (v *Vacation) ReturnDate() time.Time {
	return DateOnly(v.EndDate).AddDate(0, 0, 1)
}

// DayOfWeek converts Go weekday (Sunday = 0) into Monday-based index (Monday = 0)
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayName English name of a Monday-based weekday index
func DayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return ""
	}
	return time.Weekday((dayOfWeek + 1) % 7).String()
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
