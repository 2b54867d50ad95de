package staff_users

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/staff/models"
)

type StaffService interface {
	List(ctx context.Context) ([]models.UserResponse, error)
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
