package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/availability/models"
)

// Catalog получение барбера и услуги
type Catalog interface {
	GetBarber(ctx context.Context, id int64) (*domain.User, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityEngine движок свободных слотов
type AvailabilityEngine interface {
	ListAvailableSlots(ctx context.Context, req *models.SlotRequest) (*models.DaySlots, error)
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
