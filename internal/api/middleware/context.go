package middleware

import (
	"context"

	"github.com/m04kA/barberflow/internal/domain"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyRequestID
	ctxKeyClientIP
)

// WithUser кладет аутентифицированного пользователя в контекст
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// GetUser возвращает пользователя, положенного middleware Auth
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(*domain.User)
	return user, ok && user != nil
}

// GetUserID возвращает ID аутентифицированного пользователя
func GetUserID(ctx context.Context) (int64, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetRequestID возвращает ID запроса
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
