package barber_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/schedule"
	"github.com/m04kA/barberflow/internal/service/schedule/models"
)

const (
	msgInvalidBarberID  = "некорректный ID барбера"
	msgInvalidDay       = "день недели должен быть от 0 (понедельник) до 6 (воскресенье)"
	msgInvalidRequest   = "некорректный формат запроса"
	msgInvalidHours     = "время начала должно быть раньше окончания, формат HH:MM"
	msgInvalidDates     = "некорректные даты отпуска, ожидается YYYY-MM-DD и начало не позже конца"
	msgBarberNotFound   = "барбер не найден"
	msgVacationNotFound = "отпуск не найден"
)

// Handler расписание и отпуск барбера в админке
type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/admin/barbers/{barberId}/schedule
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.barberID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetBarberSchedule(r.Context(), barberID)
	if err != nil {
		h.respondError(w, "GET /admin/barbers/{id}/schedule", barberID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// PutDay PUT /api/v1/admin/barbers/{barberId}/schedule/{day}
func (h *Handler) PutDay(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.barberID(w, r)
	if !ok {
		return
	}

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 0 || day > 6 {
		h.logger.Warn("PUT /admin/barbers/{id}/schedule/{day} - Invalid day: %q", mux.Vars(r)["day"])
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	var body WorkingHoursRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /admin/barbers/{id}/schedule/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.service.SetWorkingHours(r.Context(), &models.SetWorkingHoursRequest{
		BarberID:  barberID,
		DayOfWeek: day,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		IsWorking: body.IsWorking,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidHours)
			return
		}
		h.respondError(w, "PUT /admin/barbers/{id}/schedule/{day}", barberID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// PutVacation PUT /api/v1/admin/barbers/{barberId}/vacation
func (h *Handler) PutVacation(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.barberID(w, r)
	if !ok {
		return
	}

	var body VacationRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /admin/barbers/{id}/vacation - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	start, errStart := time.Parse(domain.DateFormat, body.StartDate)
	end, errEnd := time.Parse(domain.DateFormat, body.EndDate)
	if errStart != nil || errEnd != nil {
		h.logger.Warn("PUT /admin/barbers/{id}/vacation - Invalid dates: start=%q, end=%q", body.StartDate, body.EndDate)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.service.SetVacation(r.Context(), &models.SetVacationRequest{
		BarberID:  barberID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		h.respondError(w, "PUT /admin/barbers/{id}/vacation", barberID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteVacation DELETE /api/v1/admin/barbers/{barberId}/vacation
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	barberID, ok := h.barberID(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearVacation(r.Context(), barberID); err != nil {
		h.respondError(w, "DELETE /admin/barbers/{id}/vacation", barberID, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) barberID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid barber ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return 0, false
	}
	return barberID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, barberID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrBarberNotFound):
		h.logger.Warn("%s - Barber not found: barber_id=%d", route, barberID)
		handlers.RespondNotFound(w, msgBarberNotFound)

	case errors.Is(err, schedule.ErrVacationNotFound):
		handlers.RespondNotFound(w, msgVacationNotFound)

	default:
		h.logger.Error("%s - Failed: barber_id=%d, error=%v", route, barberID, err)
		handlers.RespondInternalError(w)
	}
}
