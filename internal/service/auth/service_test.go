package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/infra/loginguard"
	userRepo "github.com/m04kA/barberflow/internal/infra/storage/user"
	"github.com/m04kA/barberflow/internal/service/auth/models"
	"github.com/m04kA/barberflow/pkg/logger"
)

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func newService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUsers{users: map[string]*domain.User{
		"admin":   {ID: 1, Username: "admin", PasswordHash: string(hash), Role: domain.RoleAdmin, FullName: "Admin", IsActive: true},
		"retired": {ID: 2, Username: "retired", PasswordHash: string(hash), Role: domain.RoleBarber, IsActive: false},
	}}
	guard := loginguard.NewMemoryGuard(loginguard.Policy{MaxAttempts: 3, BlockFor: 30 * time.Minute})

	return NewService(users, guard, logger.NewNop())
}

func TestLogin_Success(t *testing.T) {
	svc := newService(t)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: " admin ", Password: "secret", ClientKey: "1.1.1.1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "admin", resp.Role)
}

func TestLogin_RemainingAttemptsThenBlock(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	req := &models.LoginRequest{Username: "admin", Password: "wrong", ClientKey: "2.2.2.2"}

	_, err := svc.Login(ctx, req)
	var invalid *InvalidCredentialsError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.Remaining)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "x", ClientKey: "2.2.2.2"})
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.Remaining)

	_, err = svc.Login(ctx, req)
	var throttled *ThrottledError
	require.True(t, errors.As(err, &throttled))
	assert.Equal(t, 30, throttled.MinutesLeft())

	// correct password is rejected while blocked
	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "secret", ClientKey: "2.2.2.2"})
	assert.ErrorIs(t, err, ErrThrottled)

	// other clients are unaffected
	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "secret", ClientKey: "3.3.3.3"})
	assert.NoError(t, err)
}

func TestLogin_SuccessResetsAttempts(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, _ = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong", ClientKey: "4.4.4.4"})
	_, _ = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong", ClientKey: "4.4.4.4"})
	_, err := svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "secret", ClientKey: "4.4.4.4"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "admin", Password: "wrong", ClientKey: "4.4.4.4"})
	var invalid *InvalidCredentialsError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.Remaining)
}

func TestLogin_InactiveAndEmpty(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &models.LoginRequest{Username: "retired", Password: "secret", ClientKey: "5.5.5.5"})
	assert.ErrorIs(t, err, ErrUserInactive)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "", Password: "secret", ClientKey: "5.5.5.5"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
