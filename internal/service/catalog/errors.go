package catalog

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден, неактивен или не является барбером
	ErrBarberNotFound = errors.New("catalog: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrServiceInUse возвращается при удалении услуги, на которую есть бронирования
	ErrServiceInUse = errors.New("catalog: service has bookings")

	// ErrInvalidInput возвращается при некорректных данных услуги
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
