package get_month_bookings

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

type BookingsService interface {
	GetMonthBookings(ctx context.Context, actor *domain.User, req *models.MonthRequest) ([]models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
