package reschedule_booking

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// Request перенос бронирования на новый интервал (drag-and-drop в календаре)
type Request struct {
	Actor     *domain.User
	BookingID int64
	Start     time.Time
	End       time.Time
}

// Response бронирование после переноса
type Response struct {
	ID        int64
	BarberID  int64
	Status    string
	OldStart  time.Time
	OldEnd    time.Time
	StartTime time.Time
	EndTime   time.Time
}
