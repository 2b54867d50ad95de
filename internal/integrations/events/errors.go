package events

import "errors"

var (
	// ErrMarshal ошибка сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrQueueFull очередь отправки заполнена, событие отброшено
	ErrQueueFull = errors.New("events: publish queue is full")

	// ErrClosed публикатор уже закрыт
	ErrClosed = errors.New("events: publisher is closed")
)
