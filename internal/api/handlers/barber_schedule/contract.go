package barber_schedule

import (
	"context"

	"github.com/m04kA/barberflow/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBarberSchedule(ctx context.Context, barberID int64) (*models.BarberScheduleResponse, error)
	SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.DayScheduleResponse, error)
	SetVacation(ctx context.Context, req *models.SetVacationRequest) (*models.VacationResponse, error)
	ClearVacation(ctx context.Context, barberID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
