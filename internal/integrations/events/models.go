package events

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// Type тип события бронирования
type Type string

const (
	TypeBookingCreated       Type = "booking.created"
	TypeBookingRescheduled   Type = "booking.rescheduled"
	TypeBookingStatusChanged Type = "booking.status_changed"
	TypeBookingUpdated       Type = "booking.updated"
)

// BookingEvent сообщение в топик событий бронирований
type BookingEvent struct {
	ID               string    `json:"id"`
	Type             Type      `json:"type"`
	BookingID        int64     `json:"bookingId"`
	BarberID         int64     `json:"barberId"`
	ServiceID        int64     `json:"serviceId"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Status           string    `json:"status"`
	PreviousStatus   string    `json:"previousStatus,omitempty"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    *string   `json:"customerEmail,omitempty"`
	ConfirmationCode string    `json:"confirmationCode,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(eventType Type, booking *domain.Booking, occurredAt time.Time) *BookingEvent {
	return &BookingEvent{
		Type:             eventType,
		BookingID:        booking.ID,
		BarberID:         booking.BarberID,
		ServiceID:        booking.ServiceID,
		Start:            booking.StartTime,
		End:              booking.EndTime,
		Status:           string(booking.Status),
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		ConfirmationCode: booking.ConfirmationCode,
		OccurredAt:       occurredAt,
	}
}
