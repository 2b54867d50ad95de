package login

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/service/auth"
	"github.com/m04kA/barberflow/internal/service/auth/models"
)

const (
	msgInvalidRequest     = "некорректный формат запроса"
	msgMissingCredentials = "введите логин и пароль"
	msgInvalidCredentials = "неверный логин или пароль"
	msgRemainingTemplate  = "неверный логин или пароль, осталось попыток: %d"
	msgThrottledTemplate  = "слишком много неудачных попыток, попробуйте через %d мин."
	msgUserInactive       = "учетная запись отключена"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	clientIP := middleware.ClientIP(r)

	result, err := h.service.Login(r.Context(), &models.LoginRequest{
		Username:  body.Username,
		Password:  body.Password,
		ClientKey: clientIP,
	})
	if err != nil {
		var throttled *auth.ThrottledError
		var invalid *auth.InvalidCredentialsError

		switch {
		case errors.As(err, &throttled):
			h.logger.Warn("POST /auth/login - Throttled: ip=%s, retry_after=%s", clientIP, throttled.RetryAfter)
			w.Header().Set("Retry-After", strconv.Itoa(int(throttled.RetryAfter.Seconds())))
			handlers.RespondError(w, http.StatusTooManyRequests, fmt.Sprintf(msgThrottledTemplate, throttled.MinutesLeft()))

		case errors.As(err, &invalid):
			h.logger.Warn("POST /auth/login - Invalid credentials: ip=%s, remaining=%d", clientIP, invalid.Remaining)
			handlers.RespondUnauthorized(w, fmt.Sprintf(msgRemainingTemplate, invalid.Remaining))

		case errors.Is(err, auth.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrUserInactive):
			h.logger.Warn("POST /auth/login - Inactive user: username=%s", body.Username)
			handlers.RespondForbidden(w, msgUserInactive)

		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%d, role=%s", result.UserID, result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
