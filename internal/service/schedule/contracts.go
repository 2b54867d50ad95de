package schedule

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetWeek(ctx context.Context, barberID int64) ([]*domain.WorkingHours, error)
	UpsertWorkingHours(ctx context.Context, hours *domain.WorkingHours) (*domain.WorkingHours, error)
	GetVacation(ctx context.Context, barberID int64) (*domain.Vacation, error)
	SetVacation(ctx context.Context, vacation *domain.Vacation) error
	DeleteVacation(ctx context.Context, barberID int64) error
}

// BarberProvider проверка существования барбера
type BarberProvider interface {
	GetBarber(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
