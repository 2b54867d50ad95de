package reschedule_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/barberflow/internal/usecase/reschedule_booking"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequest       = "некорректный формат запроса"
	msgInvalidDateTime      = "некорректный формат времени"
	msgInvalidInterval      = "время окончания должно быть позже начала"
	msgBookingNotFound      = "бронирование не найдено"
	msgAccessDenied         = "недостаточно прав для переноса"
	msgCannotReschedule     = "завершенное или отмененное бронирование нельзя перенести"
	msgSlotNotAvailable     = "время занято"
	msgSlotConflictTemplate = "время занято (бронирование #%d)"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/datetime
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/datetime - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var body RescheduleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/datetime - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	start, errStart := handlers.ParseDateTime(body.StartTime, h.location)
	end, errEnd := handlers.ParseDateTime(body.EndTime, h.location)
	if errStart != nil || errEnd != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/datetime - Invalid datetime: start=%q, end=%q", body.StartTime, body.EndTime)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Start:     start,
		End:       end,
	})
	if err != nil {
		var conflict *rescheduleBooking.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			if conflict.BookingID == 0 {
				handlers.RespondConflict(w, msgSlotNotAvailable)
			} else {
				handlers.RespondConflict(w, fmt.Sprintf(msgSlotConflictTemplate, conflict.BookingID))
			}

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("PATCH /admin/bookings/{id}/datetime - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
