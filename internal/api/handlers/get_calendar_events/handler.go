package get_calendar_events

import (
	"net/http"
	"time"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
)

const (
	msgUnauthorized    = "требуется авторизация"
	msgInvalidBarberID = "некорректный ID барбера"
)

type Handler struct {
	service  BookingsService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingsService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/bookings?start=&end=&barberId=
// Некорректные start/end игнорируются, календарь присылает их в разных форматах.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	query := r.URL.Query()
	req := &models.CalendarRequest{}

	if raw := query.Get("start"); raw != "" {
		if start, err := handlers.ParseDateTime(raw, h.location); err == nil {
			req.Start = &start
		} else {
			h.logger.Warn("GET /admin/bookings - Ignoring invalid start=%q", raw)
		}
	}
	if raw := query.Get("end"); raw != "" {
		if end, err := handlers.ParseDateTime(raw, h.location); err == nil {
			req.End = &end
		} else {
			h.logger.Warn("GET /admin/bookings - Ignoring invalid end=%q", raw)
		}
	}

	barberID, err := handlers.ParseOptionalInt64(query.Get("barberId"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}
	req.BarberID = barberID

	events, err := h.service.GetCalendarEvents(r.Context(), actor, req)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to get events: user_id=%d, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, events)
}
