package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/pkg/ptr"
)

// UseCase use case переноса бронирования администратором
type UseCase struct {
	bookingRepo  BookingRepository
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
		engine:       engine,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование. Собственный интервал бронирования при проверке не учитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и права
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	if !req.Actor.CanManageBookings() {
		uc.logger.Warn("RescheduleBooking: user=%d with role=%s cannot reschedule", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	start := req.Start.In(uc.location)
	end := req.End.In(uc.location)

	uc.logger.Info("RescheduleBooking: booking id=%d to %s - %s by user=%d",
		req.BookingID, start.Format(time.RFC3339), end.Format(time.RFC3339), req.Actor.ID)

	var booking *domain.Booking
	var oldStart, oldEnd time.Time

	// 2. Чтение с блокировкой, проверка и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
		}

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

		if err := uc.bookingRepo.UpdateTime(txCtx, booking.ID, start, end); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return &SlotConflictError{}
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to update time: %w", ErrInternal, err)
		}

		oldStart, oldEnd = booking.StartTime.In(uc.location), booking.EndTime.In(uc.location)
		booking.StartTime, booking.EndTime = start, end
		return nil
	})

	if err != nil {
		var conflict *SlotConflictError
		switch {
		case errors.As(err, &conflict):
			uc.metrics.IncBookingConflict("reschedule")
			uc.logger.Warn("RescheduleBooking: booking id=%d: %v", req.BookingID, err)
			return nil, conflict
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrCannotReschedule):
			uc.logger.Warn("RescheduleBooking: booking id=%d: %v", req.BookingID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RescheduleBooking: booking id=%d: %v", req.BookingID, err)
			return nil, err
		}
		uc.logger.Error("RescheduleBooking: transaction failed for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s-%s to %s-%s",
		booking.ID,
		oldStart.Format(domain.LocalDateTimeFormat), oldEnd.Format(domain.TimeFormat),
		start.Format(domain.LocalDateTimeFormat), end.Format(domain.TimeFormat))

	if err := uc.publisher.Publish(ctx, events.NewBookingEvent(events.TypeBookingRescheduled, booking, uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("RescheduleBooking: event for booking id=%d not queued: %v", booking.ID, err)
	}

	return &Response{
		ID:        booking.ID,
		BarberID:  booking.BarberID,
		Status:    string(booking.Status),
		OldStart:  oldStart,
		OldEnd:    oldEnd,
		StartTime: start,
		EndTime:   end,
	}, nil
}
