package edit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	bookingModels "github.com/m04kA/barberflow/internal/service/bookings/models"
	"github.com/m04kA/barberflow/internal/service/catalog"
	"github.com/m04kA/barberflow/pkg/ptr"
)

// UseCase use case редактирования бронирования администратором или ресепшн
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      Catalog
	engine       AvailabilityEngine
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
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
		logger:       logger,
	}
}

// Execute сохраняет отредактированное бронирование.
// Смена статуса подчиняется тем же переходам, что и PATCH статуса.
// Интервал проверяется без учета самого бронирования; отмененное бронирование время не занимает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*bookingModels.BookingResponse, error) {
	// 1. Валидация и права
	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("EditBooking: validation failed: %v", err)
		return nil, err
	}

	if !req.Actor.CanManageBookings() {
		uc.logger.Warn("EditBooking: user=%d with role=%s cannot edit bookings", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	uc.logger.Info("EditBooking: booking id=%d by user=%d: barber=%d, service=%d, %s %s",
		req.BookingID, req.Actor.ID, req.BarberID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 2. Услуга и барбер
	service, err := uc.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			uc.logger.Warn("EditBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("EditBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	barber, err := uc.catalog.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			uc.logger.Warn("EditBooking: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("EditBooking: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 3. Новый интервал в часовом поясе салона
	y, m, d := req.Date.Date()
	start, err := req.StartTime.On(time.Date(y, m, d, 0, 0, 0, 0, uc.location))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	duration := service.DurationMinutes
	if duration <= 0 {
		duration = domain.DefaultServiceDurationMinutes
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	var updated *domain.Booking
	var previousStatus domain.BookingStatus

	// 4. Чтение с блокировкой, проверка и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		previousStatus = current.Status
		next := current.Status
		if status != "" && status != current.Status {
			if !current.Status.CanTransitionTo(status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
			}
			next = status
		}

		booking := *current
		booking.ServiceID = service.ID
		booking.BarberID = barber.ID
		booking.StartTime = start
		booking.EndTime = end
		booking.Status = next
		booking.CustomerName = req.CustomerName
		booking.CustomerPhone = req.CustomerPhone
		booking.CustomerEmail = req.CustomerEmail
		booking.Notes = req.Notes

		if booking.BlocksTime() {
			check, err := uc.engine.IsIntervalAvailable(txCtx, &models.IntervalRequest{
				BarberID:         booking.BarberID,
				Start:            start,
				End:              end,
				ExcludeBookingID: ptr.Ptr(booking.ID),
			})
			if err != nil {
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

		if err := uc.bookingRepo.Update(txCtx, &booking); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return &SlotConflictError{}
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		updated = &booking
		return nil
	})

	if err != nil {
		var conflict *SlotConflictError
		switch {
		case errors.As(err, &conflict):
			uc.metrics.IncBookingConflict("edit")
			uc.logger.Warn("EditBooking: booking id=%d: %v", req.BookingID, err)
			return nil, conflict
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("EditBooking: booking id=%d: %v", req.BookingID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("EditBooking: booking id=%d: %v", req.BookingID, err)
			return nil, err
		}
		uc.logger.Error("EditBooking: transaction failed for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	updated.ServiceName = service.Name
	updated.BarberName = barber.FullName
	updated = updated.In(uc.location)

	uc.logger.Info("EditBooking: booking id=%d saved: barber=%d, %s-%s, status %s -> %s",
		updated.ID, updated.BarberID,
		updated.StartTime.Format(domain.LocalDateTimeFormat), updated.EndTime.Format(domain.TimeFormat),
		previousStatus, updated.Status)

	event := events.NewBookingEvent(events.TypeBookingUpdated, updated, uc.timeProvider.Now())
	if previousStatus != updated.Status {
		event.PreviousStatus = string(previousStatus)
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("EditBooking: event for booking id=%d not queued: %v", updated.ID, err)
	}

	return bookingModels.FromDomainBooking(updated), nil
}
