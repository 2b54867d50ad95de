package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/barberflow/internal/domain"
	serviceRepo "github.com/m04kA/barberflow/internal/infra/storage/service"
	userRepo "github.com/m04kA/barberflow/internal/infra/storage/user"
	"github.com/m04kA/barberflow/internal/service/catalog/models"
)

// Service публичный каталог: барберы и услуги
type Service struct {
	userRepo    UserRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(userRepo UserRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListBarbers возвращает активных барберов
func (s *Service) ListBarbers(ctx context.Context) ([]models.BarberResponse, error) {
	barbers, err := s.userRepo.ListActiveBarbers(ctx)
	if err != nil {
		s.logger.Error("ListBarbers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBarbers - repository error: %v", ErrInternal, err)
	}

	result := make([]models.BarberResponse, 0, len(barbers))
	for _, b := range barbers {
		result = append(result, models.FromDomainBarber(b))
	}
	return result, nil
}

// ListServices возвращает активные услуги
func (s *Service) ListServices(ctx context.Context) ([]models.ServiceResponse, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	result := make([]models.ServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, models.FromDomainService(svc))
	}
	return result, nil
}

// GetBarber возвращает активного барбера. Пользователь с другой ролью считается ненайденным.
func (s *Service) GetBarber(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarber: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetBarber - repository error: %v", ErrInternal, err)
	}

	if !user.IsBarber() || !user.IsActive {
		s.logger.Warn("GetBarber: user id=%d is not an active barber (role=%s, active=%t)", id, user.Role, user.IsActive)
		return nil, ErrBarberNotFound
	}

	return user, nil
}

// GetService возвращает активную услугу
func (s *Service) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	if !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	return svc, nil
}

// ListAllServices возвращает все услуги для админки, включая выключенные
func (s *Service) ListAllServices(ctx context.Context) ([]models.AdminServiceResponse, error) {
	services, err := s.serviceRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAllServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAllServices - repository error: %v", ErrInternal, err)
	}

	result := make([]models.AdminServiceResponse, 0, len(services))
	for _, svc := range services {
		result = append(result, models.FromDomainAdminService(svc))
	}
	return result, nil
}

// CreateService добавляет услугу в каталог
func (s *Service) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.AdminServiceResponse, error) {
	svc, err := serviceFromRequest(req)
	if err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: service id=%d %q created, price=%.2f, duration=%d",
		created.ID, created.Name, created.Price, created.DurationMinutes)

	resp := models.FromDomainAdminService(created)
	return &resp, nil
}

// UpdateService заменяет поля услуги
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.AdminServiceResponse, error) {
	svc, err := serviceFromRequest(req)
	if err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	svc.ID = id

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: service id=%d updated, active=%t", id, svc.IsActive)

	resp := models.FromDomainAdminService(svc)
	return &resp, nil
}

// DeleteService удаляет услугу без бронирований. Услугу с историей можно только выключить.
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			return ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrServiceInUse):
			s.logger.Warn("DeleteService: service id=%d has bookings", id)
			return ErrServiceInUse
		}
		s.logger.Error("DeleteService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: service id=%d deleted", id)
	return nil
}

func serviceFromRequest(req *models.ServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case utf8.RuneCountInString(name) > domain.MaxServiceNameLength:
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	case req.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case req.Duration <= 0:
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	svc := &domain.Service{
		Name:            name,
		Price:           req.Price,
		DurationMinutes: req.Duration,
		IsActive:        true,
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		description := strings.TrimSpace(*req.Description)
		svc.Description = &description
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	return svc, nil
}
