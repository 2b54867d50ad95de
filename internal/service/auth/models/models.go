package models

import "github.com/m04kA/barberflow/internal/domain"

// LoginRequest запрос на вход в админ-панель
type LoginRequest struct {
	Username  string
	Password  string
	ClientKey string // IP клиента
}

// LoginResponse данные вошедшего пользователя
type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// FromDomainUser конвертирует пользователя
func FromDomainUser(u *domain.User) *LoginResponse {
	return &LoginResponse{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     string(u.Role),
	}
}
