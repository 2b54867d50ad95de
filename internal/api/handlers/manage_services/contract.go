package manage_services

import (
	"context"

	"github.com/m04kA/barberflow/internal/service/catalog/models"
)

type CatalogService interface {
	ListAllServices(ctx context.Context) ([]models.AdminServiceResponse, error)
	CreateService(ctx context.Context, req *models.ServiceRequest) (*models.AdminServiceResponse, error)
	UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.AdminServiceResponse, error)
	DeleteService(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
