package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	createBooking "github.com/m04kA/barberflow/internal/usecase/create_booking"
)

const (
	msgInvalidRequest       = "некорректный формат запроса"
	msgInvalidDateTime      = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "проверьте обязательные поля: услуга, барбер, имя и телефон"
	msgServiceNotFound      = "услуга не найдена"
	msgBarberNotFound       = "барбер не найден"
	msgBookingInPast        = "нельзя записаться на прошедшее время"
	msgOutsideWorkingHours  = "выбранное время вне рабочих часов барбера"
	msgSlotNotAvailable     = "это время уже занято, выберите другое"
	msgSlotConflictTemplate = "это время уже занято (бронирование #%d), выберите другое"
	msgUnauthorized         = "требуется авторизация"
	msgInvalidStatus        = "некорректный статус"
	msgAccessDenied         = "недостаточно прав для создания бронирований"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body CreateBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	req, err := body.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date/time: date=%s, time=%s, error=%v", body.Date, body.Time, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /bookings", &body, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: id=%d, code=%s", result.ID, result.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandleStaff POST /api/v1/admin/bookings
func (h *Handler) HandleStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var body StaffBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	req, err := body.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid date/time: date=%s, time=%s, error=%v", body.Date, body.Time, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.ExecuteByStaff(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createBooking.ErrInvalidStatus):
			h.logger.Warn("POST /admin/bookings - Invalid status: %q", body.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.respondError(w, "POST /admin/bookings", &body.CreateBookingRequest, err)
		}
		return
	}

	h.logger.Info("POST /admin/bookings - Booking created by user=%d: id=%d, status=%s", actor.ID, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, route string, body *CreateBookingRequest, err error) {
	var notWorking *createBooking.NotWorkingError
	var conflict *createBooking.SlotConflictError

	switch {
	case errors.As(err, &notWorking):
		h.logger.Warn("%s - Barber not working: barber_id=%d, date=%s", route, body.BarberID, body.Date)
		handlers.RespondBadRequest(w, notWorking.Message)

	case errors.As(err, &conflict):
		h.logger.Warn("%s - Slot conflict: barber_id=%d, date=%s, time=%s, booking_id=%d",
			route, body.BarberID, body.Date, body.Time, conflict.BookingID)
		if conflict.BookingID == 0 {
			handlers.RespondConflict(w, msgSlotNotAvailable)
		} else {
			handlers.RespondConflict(w, fmt.Sprintf(msgSlotConflictTemplate, conflict.BookingID))
		}

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot not available: barber_id=%d", route, body.BarberID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: service_id=%d", route, body.ServiceID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrBarberNotFound):
		h.logger.Warn("%s - Barber not found: barber_id=%d", route, body.BarberID)
		handlers.RespondNotFound(w, msgBarberNotFound)

	case errors.Is(err, createBooking.ErrBookingInPast):
		h.logger.Warn("%s - Booking in the past: date=%s, time=%s", route, body.Date, body.Time)
		handlers.RespondBadRequest(w, msgBookingInPast)

	case errors.Is(err, createBooking.ErrOutsideWorkingHours):
		h.logger.Warn("%s - Outside working hours: barber_id=%d, time=%s", route, body.BarberID, body.Time)
		handlers.RespondBadRequest(w, msgOutsideWorkingHours)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to create booking: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
