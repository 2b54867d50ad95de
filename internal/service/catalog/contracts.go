package catalog

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
)

// UserRepository интерфейс репозитория сотрудников
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListActiveBarbers(ctx context.Context) ([]*domain.User, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	ListAll(ctx context.Context) ([]*domain.Service, error)
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
