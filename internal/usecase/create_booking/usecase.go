package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/availability"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/internal/service/catalog"
)

// maxCodeAttempts попыток подобрать уникальный код подтверждения
const maxCodeAttempts = 3

// UseCase use case для создания бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      Catalog
	engine       AvailabilityEngine
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	codeGen      func() (string, error)
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog Catalog,
	engine AvailabilityEngine,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		engine:       engine,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		codeGen:      domain.NewConfirmationCode,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка интервала и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: barber=%d, service=%d, date=%s, time=%s",
		req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Услуга и барбер
	service, barber, err := uc.lookup(ctx, req.ServiceID, req.BarberID)
	if err != nil {
		return nil, err
	}

	// 4. Интервал [start, start+duration) в часовом поясе салона
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	start, err := req.StartTime.On(date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(serviceDuration(service)) * time.Minute)

	if !start.After(now) {
		uc.logger.Warn("CreateBooking: start %s is not in the future", start.Format(time.RFC3339))
		return nil, ErrBookingInPast
	}

	// 5. Рабочий день барбера
	day, err := uc.engine.GetWorkingDay(ctx, barber.ID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get working day for barber=%d: %v", barber.ID, err)
		return nil, fmt.Errorf("%w: failed to get working day: %v", ErrInternal, err)
	}

	if !day.IsWorking {
		uc.logger.Warn("CreateBooking: barber=%d is not working on %s (%s)",
			barber.ID, date.Format(domain.DateFormat), day.Reason)
		return nil, &NotWorkingError{Message: day.NotWorkingMessage()}
	}

	if start.Before(day.Start) || !start.Before(day.End) {
		uc.logger.Warn("CreateBooking: %s is outside working hours %s-%s", req.StartTime, day.WorkStart, day.WorkEnd)
		return nil, fmt.Errorf("%w: working hours %s-%s", ErrOutsideWorkingHours, day.WorkStart, day.WorkEnd)
	}

	// 6. Проверка и вставка в сериализуемой транзакции
	result, err := uc.save(ctx, &domain.Booking{
		ServiceID:     service.ID,
		BarberID:      barber.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        domain.StatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	// 7. Метрики и событие
	return uc.finish(ctx, result, service, barber, now), nil
}

// ExecuteByStaff создает запись из админки. Статус задает сотрудник,
// прошедшее время и нерабочие часы допустимы, пересечения с другими записями нет.
func (uc *UseCase) ExecuteByStaff(ctx context.Context, actor *domain.User, req *StaffRequest) (*Response, error) {
	uc.logger.Info("CreateBookingByStaff: user=%d, barber=%d, service=%d, date=%s, time=%s, status=%s",
		actor.ID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Status)

	if !actor.CanManageBookings() {
		uc.logger.Warn("CreateBookingByStaff: user=%d with role=%s cannot create bookings", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	status, err := validateStaffRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBookingByStaff: validation failed: %v", err)
		return nil, err
	}

	service, barber, err := uc.lookup(ctx, req.ServiceID, req.BarberID)
	if err != nil {
		return nil, err
	}

	y, m, d := req.Date.Date()
	start, err := req.StartTime.On(time.Date(y, m, d, 0, 0, 0, 0, uc.location))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}
	end := start.Add(time.Duration(serviceDuration(service)) * time.Minute)

	result, err := uc.save(ctx, &domain.Booking{
		ServiceID:     service.ID,
		BarberID:      barber.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return uc.finish(ctx, result, service, barber, uc.timeProvider.Now()), nil
}

// lookup услуга и барбер записи
func (uc *UseCase) lookup(ctx context.Context, serviceID, barberID int64) (*domain.Service, *domain.User, error) {
	service, err := uc.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	barber, err := uc.catalog.GetBarber(ctx, barberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			uc.logger.Warn("CreateBooking: barber id=%d not found", barberID)
			return nil, nil, ErrBarberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get barber id=%d: %v", barberID, err)
		return nil, nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	return service, barber, nil
}

// save проверяет интервал и вставляет запись в одной сериализуемой транзакции.
// Отмененная запись время не занимает, поэтому вставляется без проверки.
// При совпадении кода подтверждения транзакция повторяется с новым кодом.
func (uc *UseCase) save(ctx context.Context, draft *domain.Booking) (*domain.Booking, error) {
	var result *domain.Booking

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := uc.codeGen()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to generate confirmation code: %v", ErrInternal, err)
		}

		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// Проверяем, что интервал свободен
			if draft.BlocksTime() {
				check, err := uc.engine.IsIntervalAvailable(txCtx, &models.IntervalRequest{
					BarberID: draft.BarberID,
					Start:    draft.StartTime,
					End:      draft.EndTime,
				})
				if err != nil {
					if errors.Is(err, availability.ErrInvalidRequest) {
						return fmt.Errorf("%w: %v", ErrInvalidInput, err)
					}
					return fmt.Errorf("%w: failed to check interval: %w", ErrInternal, err)
				}

				if !check.Available {
					conflict := &SlotConflictError{}
					if check.ConflictingBookingID != nil {
						conflict.BookingID = *check.ConflictingBookingID
					}
					return conflict
				}
			}

			// Сохраняем бронирование
			booking := *draft
			booking.ConfirmationCode = code

			created, err := uc.bookingRepo.Create(txCtx, &booking)
			if err != nil {
				switch {
				case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
					return &SlotConflictError{}
				case errors.Is(err, bookingRepo.ErrDuplicateCode):
					return err
				}
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}

			result = created
			return nil
		})

		if errors.Is(err, bookingRepo.ErrDuplicateCode) {
			uc.logger.Warn("CreateBooking: confirmation code collision, attempt %d/%d", attempt, maxCodeAttempts)
			continue
		}
		if err != nil {
			return nil, uc.handleTxError(err, draft.BarberID)
		}
		break
	}

	if result == nil {
		uc.logger.Error("CreateBooking: no unique confirmation code after %d attempts", maxCodeAttempts)
		return nil, fmt.Errorf("%w: confirmation code collisions", ErrInternal)
	}

	return result, nil
}

// finish метрики, событие booking.created и ответ
func (uc *UseCase) finish(ctx context.Context, result *domain.Booking, service *domain.Service, barber *domain.User, now time.Time) *Response {
	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s, barber=%d, %s-%s, status=%s",
		result.ID, result.ConfirmationCode, barber.ID, result.StartTime.Format(time.RFC3339),
		result.EndTime.Format(domain.TimeFormat), result.Status)

	uc.metrics.IncBookingCreated(barber.ID)

	result.ServiceName = service.Name
	result.BarberName = barber.FullName
	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingCreated, result, now)); err != nil {
		uc.logger.Warn("CreateBooking: event for booking id=%d not queued: %v", result.ID, err)
	}

	return &Response{
		ID:               result.ID,
		ConfirmationCode: result.ConfirmationCode,
		Status:           string(result.Status),
		ServiceID:        service.ID,
		ServiceName:      service.Name,
		BarberID:         barber.ID,
		BarberName:       barber.FullName,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		DurationMinutes:  result.DurationMinutes(),
		Price:            service.Price,
		CustomerName:     result.CustomerName,
		CustomerPhone:    result.CustomerPhone,
		CustomerEmail:    result.CustomerEmail,
		Notes:            result.Notes,
	}
}

func serviceDuration(service *domain.Service) int {
	if service.DurationMinutes <= 0 {
		return domain.DefaultServiceDurationMinutes
	}
	return service.DurationMinutes
}

func (uc *UseCase) handleTxError(err error, barberID int64) error {
	var conflict *SlotConflictError
	if errors.As(err, &conflict) {
		uc.metrics.IncBookingConflict("create")
		uc.logger.Warn("CreateBooking: slot not available for barber=%d: %v", barberID, err)
		return conflict
	}

	if errors.Is(err, ErrInvalidInput) {
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	}

	uc.logger.Error("CreateBooking: transaction failed: %v", err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
}
