package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	bookingRepo "github.com/m04kA/barberflow/internal/infra/storage/booking"
	"github.com/m04kA/barberflow/internal/integrations/events"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
	"github.com/m04kA/barberflow/pkg/ptr"
)

// Service сервис бронирований для админ-панели
type Service struct {
	bookingRepo  BookingRepository
	barbers      BarberCounter
	services     ServiceCounter
	publisher    EventPublisher
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	barbers BarberCounter,
	services ServiceCounter,
	publisher EventPublisher,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		barbers:      barbers,
		services:     services,
		publisher:    publisher,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID. Барбер видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, actor *domain.User, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if actor.IsBarber() && booking.BarberID != actor.ID {
		s.logger.Warn("GetByID: barber=%d has no access to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking.In(s.location)), nil
}

// GetCalendarEvents возвращает бронирования в формате FullCalendar.
// Барбер всегда получает только свои бронирования, фильтр по барберу игнорируется.
func (s *Service) GetCalendarEvents(ctx context.Context, actor *domain.User, req *models.CalendarRequest) ([]models.CalendarEvent, error) {
	filter := domain.BookingsFilter{
		BarberID:         s.scopeBarber(actor, req.BarberID),
		From:             req.Start,
		To:               req.End,
		IncludeCancelled: true,
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCalendarEvents: repository error for user=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: GetCalendarEvents - repository error: %v", ErrInternal, err)
	}

	result := make([]models.CalendarEvent, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, models.ToCalendarEvent(b.In(s.location)))
	}

	s.logger.Info("GetCalendarEvents: user=%d, role=%s, %d events", actor.ID, actor.Role, len(result))
	return result, nil
}

// GetMonthBookings возвращает бронирования за календарный месяц
func (s *Service) GetMonthBookings(ctx context.Context, actor *domain.User, req *models.MonthRequest) ([]models.BookingResponse, error) {
	if req.Year < 1 || req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: year and month are required", ErrInvalidInput)
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)

	filter := domain.BookingsFilter{
		BarberID:         s.scopeBarber(actor, req.BarberID),
		From:             &from,
		To:               &to,
		IncludeCancelled: true,
	}

	if req.Status != nil && *req.Status != "" {
		status, ok := models.ToDomainBookingStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetMonthBookings: repository error for %04d-%02d: %v", req.Year, req.Month, err)
		return nil, fmt.Errorf("%w: GetMonthBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(s.inLocation(bookings)), nil
}

// UpdateStatus меняет статус бронирования по машине состояний.
// Установка текущего статуса ничего не меняет.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	if !actor.CanManageBookings() {
		s.logger.Warn("UpdateStatus: user=%d with role=%s cannot change statuses", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	newStatus, ok := models.ToDomainBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var (
		booking  *domain.Booking
		previous domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		previous = booking.Status
		if previous == newStatus {
			return nil
		}

		if !previous.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}
		booking.Status = newStatus
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: booking id=%d: %v", req.BookingID, err)
		} else {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	if previous != newStatus {
		s.logger.Info("UpdateStatus: booking id=%d %s -> %s by user=%d", booking.ID, previous, newStatus, actor.ID)

		event := events.NewBookingEvent(events.TypeBookingStatusChanged, booking, s.timeProvider.Now())
		event.PreviousStatus = string(previous)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("UpdateStatus: event for booking id=%d not queued: %v", booking.ID, err)
		}
	}

	return models.FromDomainBooking(booking.In(s.location)), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !actor.CanManageBookings() {
		s.logger.Warn("Delete: user=%d with role=%s cannot delete bookings", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted by user=%d", id, actor.ID)
	return nil
}

// GetDashboard собирает счетчики и последние бронирования.
// Для барбера счетчики бронирований считаются только по его записям.
func (s *Service) GetDashboard(ctx context.Context, actor *domain.User) (*models.DashboardResponse, error) {
	barberID := s.scopeBarber(actor, nil)

	now := s.timeProvider.Now().In(s.location)
	todayStart := domain.DateOnly(now)
	todayEnd := todayStart.AddDate(0, 0, 1)

	resp := &models.DashboardResponse{}

	var err error
	resp.TodayBookings, err = s.bookingRepo.Count(ctx, domain.BookingsFilter{
		BarberID: barberID,
		From:     &todayStart,
		To:       &todayEnd,
	})
	if err != nil {
		return nil, s.dashboardError("count today", err)
	}

	resp.PendingBookings, err = s.bookingRepo.Count(ctx, domain.BookingsFilter{
		BarberID: barberID,
		Status:   ptr.Ptr(domain.StatusPending),
	})
	if err != nil {
		return nil, s.dashboardError("count pending", err)
	}

	resp.TotalBookings, err = s.bookingRepo.Count(ctx, domain.BookingsFilter{
		BarberID:         barberID,
		IncludeCancelled: true,
	})
	if err != nil {
		return nil, s.dashboardError("count total", err)
	}

	resp.ActiveBarbers, err = s.barbers.CountActiveBarbers(ctx)
	if err != nil {
		return nil, s.dashboardError("count barbers", err)
	}

	resp.ActiveServices, err = s.services.CountActive(ctx)
	if err != nil {
		return nil, s.dashboardError("count services", err)
	}

	recent, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		BarberID:         barberID,
		IncludeCancelled: true,
		Limit:            domain.RecentBookingsLimit,
		NewestFirst:      true,
	})
	if err != nil {
		return nil, s.dashboardError("list recent", err)
	}
	resp.RecentBookings = models.FromDomainBookingList(s.inLocation(recent))

	return resp, nil
}

func (s *Service) dashboardError(step string, err error) error {
	s.logger.Error("GetDashboard: %s: %v", step, err)
	return fmt.Errorf("%w: GetDashboard - %s: %v", ErrInternal, step, err)
}

// GetStatistics статистика салона за сегодня и текущий год, рейтинги барберов и услуг.
// Учитываются бронирования во всех статусах.
func (s *Service) GetStatistics(ctx context.Context, actor *domain.User) (*models.StatisticsResponse, error) {
	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("GetStatistics: user=%d with role=%s has no access", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now().In(s.location)
	todayStart := domain.DateOnly(now)
	todayEnd := todayStart.AddDate(0, 0, 1)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, s.location)

	resp := &models.StatisticsResponse{Year: now.Year()}

	var err error
	resp.TodayBookings, err = s.bookingRepo.Count(ctx, domain.BookingsFilter{
		From:             &todayStart,
		To:               &todayEnd,
		IncludeCancelled: true,
	})
	if err != nil {
		return nil, s.statisticsError("count today", err)
	}

	resp.YearlyBookings, err = s.bookingRepo.Count(ctx, domain.BookingsFilter{
		CreatedFrom:      &yearStart,
		IncludeCancelled: true,
	})
	if err != nil {
		return nil, s.statisticsError("count year", err)
	}

	barbers, err := s.bookingRepo.CountByBarber(ctx)
	if err != nil {
		return nil, s.statisticsError("barber ranking", err)
	}
	resp.BarberRanking = models.FromDomainRanking(barbers)

	services, err := s.bookingRepo.TopServices(ctx, domain.TopServicesLimit)
	if err != nil {
		return nil, s.statisticsError("top services", err)
	}
	resp.PopularServices = models.FromDomainRanking(services)

	s.logger.Info("GetStatistics: today=%d, year %d=%d, barbers=%d, services=%d",
		resp.TodayBookings, resp.Year, resp.YearlyBookings, len(resp.BarberRanking), len(resp.PopularServices))

	return resp, nil
}

func (s *Service) statisticsError(step string, err error) error {
	s.logger.Error("GetStatistics: %s: %v", step, err)
	return fmt.Errorf("%w: GetStatistics - %s: %v", ErrInternal, step, err)
}

// scopeBarber ограничивает выборку барбера его собственными бронированиями
func (s *Service) scopeBarber(actor *domain.User, requested *int64) *int64 {
	if actor.IsBarber() {
		return ptr.Ptr(actor.ID)
	}
	return requested
}

func (s *Service) inLocation(bookings []*domain.Booking) []*domain.Booking {
	for i, b := range bookings {
		bookings[i] = b.In(s.location)
	}
	return bookings
}
