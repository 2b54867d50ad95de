package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrThrottled слишком много неудачных попыток, клиент временно заблокирован
	ErrThrottled = errors.New("auth: too many failed attempts")

	// ErrUserInactive учетная запись отключена
	ErrUserInactive = errors.New("auth: user is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)

// ThrottledError блокировка с оставшимся временем
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrThrottled, e.RetryAfter)
}

func (e *ThrottledError) Unwrap() error {
	return ErrThrottled
}

// MinutesLeft округляет оставшееся время блокировки вверх до минут
func (e *ThrottledError) MinutesLeft() int {
	minutes := int((e.RetryAfter + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// InvalidCredentialsError неудачная попытка с числом оставшихся попыток
type InvalidCredentialsError struct {
	Remaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("%s: %d attempts left", ErrInvalidCredentials, e.Remaining)
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}
