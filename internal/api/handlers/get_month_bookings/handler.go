package get_month_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/service/bookings"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgYearMonth       = "параметры year и month обязательны"
	msgInvalidBarberID = "некорректный ID барбера"
	msgInvalidStatus   = "некорректный статус"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/calendar?year=&month=&barberId=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()

	year, errYear := strconv.Atoi(query.Get("year"))
	month, errMonth := strconv.Atoi(query.Get("month"))
	if errYear != nil || errMonth != nil {
		h.logger.Warn("GET /admin/bookings/calendar - Invalid year/month: year=%q, month=%q",
			query.Get("year"), query.Get("month"))
		handlers.RespondBadRequest(w, msgYearMonth)
		return
	}

	barberID, err := handlers.ParseOptionalInt64(query.Get("barberId"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings/calendar - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	req := &models.MonthRequest{
		Year:     year,
		Month:    month,
		BarberID: barberID,
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetMonthBookings(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgYearMonth)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("GET /admin/bookings/calendar - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/bookings/calendar - Failed to get bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
