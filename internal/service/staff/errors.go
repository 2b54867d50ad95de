package staff

import "errors"

var (
	// ErrUserNotFound возвращается, когда сотрудник не найден
	ErrUserNotFound = errors.New("staff: user not found")

	// ErrUsernameTaken возвращается, когда логин уже занят
	ErrUsernameTaken = errors.New("staff: username already exists")

	// ErrEmailTaken возвращается, когда email уже занят
	ErrEmailTaken = errors.New("staff: email already exists")

	// ErrUserInUse возвращается при удалении барбера, у которого есть бронирования
	ErrUserInUse = errors.New("staff: user has bookings")

	// ErrCannotDeleteSelf возвращается при попытке удалить собственную учетную запись
	ErrCannotDeleteSelf = errors.New("staff: cannot delete yourself")

	// ErrInvalidInput возвращается при некорректных данных сотрудника
	ErrInvalidInput = errors.New("staff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
