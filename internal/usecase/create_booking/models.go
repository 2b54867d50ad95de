package create_booking

import (
	"time"

	"github.com/m04kA/barberflow/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64
	BarberID      int64
	Date          time.Time        // календарная дата, время суток игнорируется
	StartTime     types.TimeString // "14:30"
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string
}

// StaffRequest запись, созданная администратором или ресепшн.
// Status: pending, confirmed, completed или cancelled, по умолчанию pending.
type StaffRequest struct {
	Request
	Status string
}

// Response модель ответа после создания бронирования
type Response struct {
	ID               int64
	ConfirmationCode string
	Status           string
	ServiceID        int64
	ServiceName      string
	BarberID         int64
	BarberName       string
	StartTime        time.Time
	EndTime          time.Time
	DurationMinutes  int
	Price            float64
	CustomerName     string
	CustomerPhone    string
	CustomerEmail    *string
	Notes            *string
}
