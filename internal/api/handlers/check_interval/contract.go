package check_interval

import (
	"context"

	"github.com/m04kA/barberflow/internal/service/availability/models"
)

type AvailabilityEngine interface {
	IsIntervalAvailable(ctx context.Context, req *models.IntervalRequest) (*models.IntervalAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
