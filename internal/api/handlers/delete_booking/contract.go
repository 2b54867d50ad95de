package delete_booking

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
)

type BookingsService interface {
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
