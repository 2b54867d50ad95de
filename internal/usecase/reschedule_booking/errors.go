package reschedule_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда роль не позволяет переносить бронирования
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrCannotReschedule возвращается для завершенных и отмененных бронирований
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled")

	// ErrSlotNotAvailable возвращается, когда новый интервал занят
	ErrSlotNotAvailable = errors.New("reschedule_booking: time is taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// SlotConflictError новый интервал пересекается с бронированием BookingID (0 если неизвестно)
type SlotConflictError struct {
	BookingID int64
}

func (e *SlotConflictError) Error() string {
	if e.BookingID == 0 {
		return ErrSlotNotAvailable.Error()
	}
	return fmt.Sprintf("%s (booking #%d)", ErrSlotNotAvailable, e.BookingID)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
