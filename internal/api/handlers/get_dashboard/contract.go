package get_dashboard

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

type BookingsService interface {
	GetDashboard(ctx context.Context, actor *domain.User) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
