package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/barberflow/internal/domain"
	userRepo "github.com/m04kA/barberflow/internal/infra/storage/user"
	"github.com/m04kA/barberflow/internal/service/staff/models"
)

// Service управление учетными записями сотрудников (только администратор)
type Service struct {
	users    UserRepository
	hashCost int
	logger   Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(users UserRepository, logger Logger) *Service {
	return &Service{
		users:    users,
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

// List возвращает всех сотрудников, новые первыми
func (s *Service) List(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, models.FromDomainUser(u))
	}
	return result, nil
}

// Create создает сотрудника с паролем в виде bcrypt-хеша
func (s *Service) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	case strings.ContainsAny(username, " \t"):
		return nil, fmt.Errorf("%w: username must not contain spaces", ErrInvalidInput)
	case utf8.RuneCountInString(username) > domain.MaxUsernameLength:
		return nil, fmt.Errorf("%w: username is longer than %d characters", ErrInvalidInput, domain.MaxUsernameLength)
	}

	if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}

	user := &domain.User{Username: username, IsActive: true}
	if err := applyProfile(user, req.Email, req.FullName, req.Role, req.Phone, req.Specialization); err != nil {
		s.logger.Warn("Create: validation failed for username=%s: %v", username, err)
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if mapped := s.mapRepoError("Create", err); mapped != nil {
			return nil, mapped
		}
		s.logger.Error("Create: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: user id=%d username=%s role=%s created", created.ID, created.Username, created.Role)

	resp := models.FromDomainUser(created)
	return &resp, nil
}

// Update меняет профиль, роль и активность сотрудника; пароль меняется, только если передан
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := applyProfile(user, req.Email, req.FullName, req.Role, req.Phone, req.Specialization); err != nil {
		s.logger.Warn("Update: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	// пустой хеш репозиторий не записывает
	user.PasswordHash = ""
	if req.Password != "" {
		if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
		}
		if user.PasswordHash, err = s.hash(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if mapped := s.mapRepoError("Update", err); mapped != nil {
			return nil, mapped
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: user id=%d updated, role=%s, active=%t, password changed=%t",
		id, user.Role, user.IsActive, req.Password != "")

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// Delete удаляет сотрудника. Удалить себя нельзя, барбера с бронированиями можно только выключить.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if actor.ID == id {
		s.logger.Warn("Delete: user id=%d tried to delete themselves", id)
		return ErrCannotDeleteSelf
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if mapped := s.mapRepoError("Delete", err); mapped != nil {
			return mapped
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: user id=%d deleted by user=%d", id, actor.ID)
	return nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		s.logger.Error("hash: bcrypt failed: %v", err)
		return "", fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}
	return string(hash), nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, userRepo.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, userRepo.ErrUsernameTaken):
		s.logger.Warn("%s: %v", op, err)
		return ErrUsernameTaken
	case errors.Is(err, userRepo.ErrEmailTaken):
		s.logger.Warn("%s: %v", op, err)
		return ErrEmailTaken
	case errors.Is(err, userRepo.ErrUserInUse):
		s.logger.Warn("%s: %v", op, err)
		return ErrUserInUse
	}
	return nil
}

// applyProfile проверяет и записывает общие для создания и редактирования поля
func applyProfile(user *domain.User, email, fullName, role string, phone, specialization *string) error {
	email = strings.TrimSpace(email)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	case utf8.RuneCountInString(email) > domain.MaxEmailLength:
		return fmt.Errorf("%w: email is longer than %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}

	fullName = strings.TrimSpace(fullName)
	switch {
	case fullName == "":
		return fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	case utf8.RuneCountInString(fullName) > domain.MaxFullNameLength:
		return fmt.Errorf("%w: fullName is longer than %d characters", ErrInvalidInput, domain.MaxFullNameLength)
	}

	parsedRole, ok := domain.ParseRole(strings.TrimSpace(role))
	if !ok {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	phone = trimOptional(phone)
	if phone != nil && utf8.RuneCountInString(*phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	specialization = trimOptional(specialization)
	if specialization != nil && utf8.RuneCountInString(*specialization) > domain.MaxSpecializationLength {
		return fmt.Errorf("%w: specialization is longer than %d characters", ErrInvalidInput, domain.MaxSpecializationLength)
	}

	user.Email = email
	user.FullName = fullName
	user.Role = parsedRole
	user.Phone = phone
	user.Specialization = specialization
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
