package get_booking

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, actor *domain.User, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
