package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// AllStatuses lists every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// statusTransitions pending -> confirmed -> completed, pending|confirmed -> cancelled
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// IsValid returns true for a known status
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true when the booking can no longer be scheduled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents an appointment of a customer with a barber
type Booking struct {
	ID        int64
	ServiceID int64
	BarberID  int64

	// Half-open interval [StartTime, EndTime)
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	CustomerName     string
	CustomerPhone    string
	CustomerEmail    *string
	Notes            *string
	ConfirmationCode string

	// Denormalized for calendar views, filled by joins
	ServiceName string
	BarberName  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksTime returns true if the booking participates in overlap checks.
// Every status except cancelled occupies the barber's time.
func (b *Booking) BlocksTime() bool {
	return b.Status != StatusCancelled
}

// CanBeRescheduled returns true if the booking may be moved to another time
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether [start, end) intersects the booking interval
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// DurationMinutes returns the booked duration
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// In returns a copy with start and end converted to loc
func (b *Booking) In(loc *time.Location) *Booking {
	if loc == nil {
		return b
	}
	cp := *b
	cp.StartTime = b.StartTime.In(loc)
	cp.EndTime = b.EndTime.In(loc)
	return &cp
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingsFilter filter for calendar and listing queries
type BookingsFilter struct {
	BarberID *int64         // nil = all barbers
	From     *time.Time     // start_time >= From
	To       *time.Time     // start_time < To
	Status   *BookingStatus // exact status

	CreatedFrom *time.Time // created_at >= CreatedFrom

	// IncludeCancelled is ignored when Status is set
	IncludeCancelled bool
	Limit            uint64
	NewestFirst      bool
}
