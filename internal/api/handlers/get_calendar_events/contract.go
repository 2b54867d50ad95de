package get_calendar_events

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

type BookingsService interface {
	GetCalendarEvents(ctx context.Context, actor *domain.User, req *models.CalendarRequest) ([]models.CalendarEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
