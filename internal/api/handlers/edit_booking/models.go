package edit_booking

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	editBooking "github.com/m04kA/barberflow/internal/usecase/edit_booking"
	"github.com/m04kA/barberflow/pkg/types"
)

// EditBookingRequest HTTP request model, поля формы редактирования
type EditBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	BarberID      int64   `json:"barberId"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Time          string  `json:"time"` // HH:MM
	Status        string  `json:"status,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *EditBookingRequest) ToUseCaseRequest(actor *domain.User, bookingID int64) (*editBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &editBooking.Request{
		Actor:         actor,
		BookingID:     bookingID,
		ServiceID:     r.ServiceID,
		BarberID:      r.BarberID,
		Date:          date,
		StartTime:     startTime,
		Status:        r.Status,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
	}, nil
}
