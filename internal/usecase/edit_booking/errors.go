package edit_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("edit_booking: booking not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("edit_booking: service not found")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("edit_booking: barber not found")

	// ErrAccessDenied возвращается, когда роль не позволяет редактировать бронирования
	ErrAccessDenied = errors.New("edit_booking: access denied")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("edit_booking: invalid booking status")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = errors.New("edit_booking: status transition not allowed")

	// ErrSlotNotAvailable возвращается, когда новый интервал занят
	ErrSlotNotAvailable = errors.New("edit_booking: time is taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_booking: internal error")
)

// SlotConflictError интервал пересекается с бронированием BookingID (0 если неизвестно)
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
