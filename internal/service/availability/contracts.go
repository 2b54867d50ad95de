package availability

import (
	"context"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// ScheduleProvider источник рабочих часов и отпусков барберов
type ScheduleProvider interface {
	// GetWorkingHours возвращает schedule.ErrWorkingHoursNotFound, если строки нет
	GetWorkingHours(ctx context.Context, barberID int64, dayOfWeek int) (*domain.WorkingHours, error)
	// GetVacation возвращает schedule.ErrVacationNotFound, если отпуск не задан
	GetVacation(ctx context.Context, barberID int64) (*domain.Vacation, error)
}

// BookingStore источник бронирований барбера
type BookingStore interface {
	// ListActiveByBarber возвращает неотменённые бронирования, пересекающие [from, to),
	// отсортированные по времени начала
	ListActiveByBarber(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
