package edit_booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	editBooking "github.com/m04kA/barberflow/internal/usecase/edit_booking"
)

const (
	msgUnauthorized         = "требуется авторизация"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequest       = "некорректный формат запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "проверьте обязательные поля: услуга, барбер, имя и телефон"
	msgInvalidStatus        = "некорректный статус"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgBookingNotFound      = "бронирование не найдено"
	msgServiceNotFound      = "услуга не найдена"
	msgBarberNotFound       = "барбер не найден"
	msgAccessDenied         = "недостаточно прав для редактирования бронирований"
	msgSlotNotAvailable     = "это время уже занято, выберите другое"
	msgSlotConflictTemplate = "это время уже занято (бронирование #%d), выберите другое"
)

type Handler struct {
	useCase EditBookingUseCase
	logger  Logger
}

func NewHandler(useCase EditBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var body EditBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	req, err := body.ToUseCaseRequest(actor, bookingID)
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid date/time: date=%s, time=%s, error=%v", body.Date, body.Time, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var conflict *editBooking.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			if conflict.BookingID == 0 {
				handlers.RespondConflict(w, msgSlotNotAvailable)
			} else {
				handlers.RespondConflict(w, fmt.Sprintf(msgSlotConflictTemplate, conflict.BookingID))
			}

		case errors.Is(err, editBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, editBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, editBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, editBooking.ErrBarberNotFound):
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, editBooking.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, editBooking.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, editBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /admin/bookings/{id} - Failed to edit booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id} - Booking edited by user=%d: booking_id=%d, status=%s",
		actor.ID, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
