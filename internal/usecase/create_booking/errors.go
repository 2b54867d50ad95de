package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrBookingInPast возвращается, когда время начала уже прошло
	ErrBookingInPast = errors.New("create_booking: booking time is in the past")

	// ErrBarberNotWorking возвращается, когда у барбера выходной или отпуск
	ErrBarberNotWorking = errors.New("create_booking: barber is not working on this date")

	// ErrOutsideWorkingHours возвращается, когда начало вне рабочих часов
	ErrOutsideWorkingHours = errors.New("create_booking: time is outside working hours")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другим бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidStatus возвращается при неизвестном статусе в записи от сотрудника
	ErrInvalidStatus = errors.New("create_booking: invalid booking status")

	// ErrAccessDenied возвращается, когда сотрудник не может создавать записи
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// NotWorkingError выходной или отпуск с сообщением для клиента
type NotWorkingError struct {
	Message string
}

func (e *NotWorkingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBarberNotWorking, e.Message)
}

func (e *NotWorkingError) Unwrap() error {
	return ErrBarberNotWorking
}

// SlotConflictError интервал занят. BookingID = 0, если конфликт обнаружила база данных.
type SlotConflictError struct {
	BookingID int64
}

func (e *SlotConflictError) Error() string {
	if e.BookingID == 0 {
		return ErrSlotNotAvailable.Error()
	}
	return fmt.Sprintf("%s: conflicts with booking #%d", ErrSlotNotAvailable, e.BookingID)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
