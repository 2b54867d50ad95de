package staff_users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/service/staff"
	"github.com/m04kA/barberflow/internal/service/staff/models"
)

const (
	msgUnauthorized     = "требуется авторизация"
	msgInvalidUserID    = "некорректный ID сотрудника"
	msgInvalidRequest   = "некорректный формат запроса"
	msgInvalidInput     = "проверьте поля: логин без пробелов, email, имя, роль и пароль не короче 6 символов"
	msgUserNotFound     = "сотрудник не найден"
	msgUsernameTaken    = "этот логин уже занят"
	msgEmailTaken       = "этот email уже используется"
	msgUserInUse        = "у сотрудника есть бронирования, отключите учетную запись вместо удаления"
	msgCannotDeleteSelf = "нельзя удалить собственную учетную запись"
)

// Handler сотрудники в админке (только администратор)
type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/users", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, users)
}

// Create POST /api/v1/admin/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body models.CreateUserRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /admin/users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	user, err := h.service.Create(r.Context(), &body)
	if err != nil {
		h.respondError(w, "POST /admin/users", 0, err)
		return
	}

	h.logger.Info("POST /admin/users - User created: user_id=%d, role=%s", user.ID, user.Role)
	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Update PUT /api/v1/admin/users/{userId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var body models.UpdateUserRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	user, err := h.service.Update(r.Context(), userID, &body)
	if err != nil {
		h.respondError(w, "PUT /admin/users/{id}", userID, err)
		return
	}

	h.logger.Info("PUT /admin/users/{id} - User updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, user)
}

// Delete DELETE /api/v1/admin/users/{userId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, userID); err != nil {
		h.respondError(w, "DELETE /admin/users/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%d, by=%d", userID, actor.ID)
	handlers.RespondNoContent(w)
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("/admin/users/{id} - Invalid user ID: %q", mux.Vars(r)["userId"])
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return 0, false
	}
	return userID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, staff.ErrUserNotFound):
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, staff.ErrUsernameTaken):
		handlers.RespondConflict(w, msgUsernameTaken)

	case errors.Is(err, staff.ErrEmailTaken):
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, staff.ErrUserInUse):
		handlers.RespondConflict(w, msgUserInUse)

	case errors.Is(err, staff.ErrCannotDeleteSelf):
		handlers.RespondBadRequest(w, msgCannotDeleteSelf)

	case errors.Is(err, staff.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
