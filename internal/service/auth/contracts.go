package auth

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/infra/loginguard"
)

// UserRepository поиск пользователя по логину
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// LoginGuard учет неудачных попыток входа по ключу клиента
type LoginGuard interface {
	Check(ctx context.Context, key string) (loginguard.Status, error)
	RegisterFailure(ctx context.Context, key string) (loginguard.Status, error)
	Reset(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
