package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/availability/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Catalog получение барбера и услуги
type Catalog interface {
	GetBarber(ctx context.Context, id int64) (*domain.User, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityEngine рабочий день барбера и проверка интервала
type AvailabilityEngine interface {
	GetWorkingDay(ctx context.Context, barberID int64, date time.Time) (*models.WorkingDay, error)
	IsIntervalAvailable(ctx context.Context, req *models.IntervalRequest) (*models.IntervalAvailability, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event *events.BookingEvent) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncBookingCreated(barberID int64)
	IncBookingConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
