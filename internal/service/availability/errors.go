package availability

import "errors"

var (
	// ErrInvalidRequest некорректные входные данные (дата в прошлом, длительность <= 0, end <= start)
	ErrInvalidRequest = errors.New("availability: invalid request")

	// ErrInternal ошибка источников данных
	ErrInternal = errors.New("availability: internal error")
)
