package models

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// CreateUserRequest новый сотрудник
type CreateUserRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	FullName       string  `json:"fullName"`
	Phone          *string `json:"phone,omitempty"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
}

// UpdateUserRequest редактирование сотрудника. Логин не меняется, пустой пароль не меняет пароль.
type UpdateUserRequest struct {
	Email          string  `json:"email"`
	Password       string  `json:"password,omitempty"`
	FullName       string  `json:"fullName"`
	Phone          *string `json:"phone,omitempty"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"` // не передан - не меняется
}

// UserResponse сотрудник в админке, без хеша пароля
type UserResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FullName       string  `json:"fullName"`
	Phone          *string `json:"phone,omitempty"`
	Role           string  `json:"role"`
	Specialization *string `json:"specialization,omitempty"`
	IsActive       bool    `json:"isActive"`
	CreatedAt      string  `json:"createdAt"`
}

// FromDomainUser конвертирует сотрудника
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		Role:           string(u.Role),
		Specialization: u.Specialization,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}
