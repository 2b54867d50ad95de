package models

import "github.com/m04kA/barberflow/internal/domain"

// BarberResponse барбер в публичном списке
type BarberResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization *string `json:"specialization,omitempty"`
}

// ServiceResponse услуга в публичном списке
type ServiceResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

// ServiceRequest создание или редактирование услуги в админке
type ServiceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	IsActive    *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// AdminServiceResponse услуга в админке, включая выключенные
type AdminServiceResponse struct {
	ServiceResponse
	IsActive bool `json:"isActive"`
}

// FromDomainBarber конвертирует пользователя-барбера
func FromDomainBarber(u *domain.User) BarberResponse {
	return BarberResponse{
		ID:             u.ID,
		Name:           u.FullName,
		Specialization: u.Specialization,
	}
}

// FromDomainService конвертирует услугу
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.DurationMinutes,
	}
}

// FromDomainAdminService конвертирует услугу для админки
func FromDomainAdminService(s *domain.Service) AdminServiceResponse {
	return AdminServiceResponse{
		ServiceResponse: FromDomainService(s),
		IsActive:        s.IsActive,
	}
}
