package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	userRepo "github.com/m04kA/barberflow/internal/infra/storage/user"
	"github.com/m04kA/barberflow/internal/service/auth/models"
)

// Service вход сотрудников в админ-панель
type Service struct {
	users  UserRepository
	guard  LoginGuard
	logger Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(users UserRepository, guard LoginGuard, logger Logger) *Service {
	return &Service{
		users:  users,
		guard:  guard,
		logger: logger,
	}
}

// Login проверяет логин и пароль.
// Неудачные попытки считаются по ClientKey, при превышении лимита клиент блокируется.
// Недоступность хранилища попыток не блокирует вход.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	status, err := s.guard.Check(ctx, req.ClientKey)
	if err != nil {
		s.logger.Error("Login: login guard check failed for client=%s: %v", req.ClientKey, err)
	} else if status.Blocked {
		s.logger.Warn("Login: client=%s is blocked for %s", req.ClientKey, status.BlockedFor)
		return nil, &ThrottledError{RetryAfter: status.BlockedFor}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Warn("Login: invalid credentials for username=%s from client=%s", username, req.ClientKey)
		return nil, s.registerFailure(ctx, req.ClientKey)
	}

	if !user.IsActive {
		s.logger.Warn("Login: user id=%d is inactive", user.ID)
		return nil, ErrUserInactive
	}

	if err := s.guard.Reset(ctx, req.ClientKey); err != nil {
		s.logger.Error("Login: failed to reset attempts for client=%s: %v", req.ClientKey, err)
	}

	s.logger.Info("Login: user id=%d (%s) logged in", user.ID, user.Role)
	return models.FromDomainUser(user), nil
}

func (s *Service) registerFailure(ctx context.Context, clientKey string) error {
	status, err := s.guard.RegisterFailure(ctx, clientKey)
	if err != nil {
		s.logger.Error("Login: failed to register attempt for client=%s: %v", clientKey, err)
		return ErrInvalidCredentials
	}

	if status.Blocked {
		s.logger.Warn("Login: client=%s blocked after %d failed attempts", clientKey, status.Attempts)
		return &ThrottledError{RetryAfter: status.BlockedFor}
	}

	return &InvalidCredentialsError{Remaining: status.Remaining}
}
