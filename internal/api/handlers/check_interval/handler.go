package check_interval

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/service/availability"
	"github.com/m04kA/barberflow/internal/service/availability/models"
)

const (
	msgInvalidBarberID  = "некорректный ID барбера"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidDateTime  = "некорректный формат времени"
	msgInvalidInterval  = "время окончания должно быть позже начала"
)

type Handler struct {
	engine   AvailabilityEngine
	location *time.Location
	logger   Logger
}

func NewHandler(engine AvailabilityEngine, location *time.Location, logger Logger) *Handler {
	return &Handler{
		engine:   engine,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/barbers/{barberId}/interval-availability?start=&end=&excludeBookingId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := strconv.ParseInt(mux.Vars(r)["barberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/barbers/{id}/interval-availability - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	query := r.URL.Query()

	start, errStart := handlers.ParseDateTime(query.Get("start"), h.location)
	end, errEnd := handlers.ParseDateTime(query.Get("end"), h.location)
	if errStart != nil || errEnd != nil {
		h.logger.Warn("GET /admin/barbers/{id}/interval-availability - Invalid datetime: start=%q, end=%q",
			query.Get("start"), query.Get("end"))
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	excludeID, err := handlers.ParseOptionalInt64(query.Get("excludeBookingId"))
	if err != nil {
		h.logger.Warn("GET /admin/barbers/{id}/interval-availability - Invalid exclude ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.engine.IsIntervalAvailable(r.Context(), &models.IntervalRequest{
		BarberID:         barberID,
		Start:            start,
		End:              end,
		ExcludeBookingID: excludeID,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
		h.logger.Error("GET /admin/barbers/{id}/interval-availability - Failed to check interval: barber_id=%d, error=%v", barberID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &IntervalAvailabilityResponse{
		Available:            result.Available,
		ConflictingBookingID: result.ConflictingBookingID,
	})
}
