package create_booking

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	createBooking "github.com/m04kA/barberflow/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
	ExecuteByStaff(ctx context.Context, actor *domain.User, req *createBooking.StaffRequest) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
