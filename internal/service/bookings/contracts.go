package bookings

import (
	"context"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	CountByBarber(ctx context.Context) ([]domain.RankedCount, error)
	TopServices(ctx context.Context, limit int) ([]domain.RankedCount, error)
}

// BarberCounter количество активных барберов для дашборда
type BarberCounter interface {
	CountActiveBarbers(ctx context.Context) (int, error)
}

// ServiceCounter количество активных услуг для дашборда
type ServiceCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// EventPublisher публикация событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event *events.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
