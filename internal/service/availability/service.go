package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	scheduleRepo "github.com/m04kA/barberflow/internal/infra/storage/schedule"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/pkg/ptr"
)

// Config настройки движка доступности
type Config struct {
	// StrictClosingTime запрещает слоты, которые заканчиваются после конца рабочего дня.
	// По умолчанию последний слот лишь начинается до конца рабочего дня.
	StrictClosingTime bool
}

// Service движок доступности: свободные слоты на день и проверка пересечения интервала.
// Ничего не кэширует и ничего не пишет, каждый вызов читает свежие данные.
type Service struct {
	schedule ScheduleProvider
	bookings BookingStore
	cfg      Config
	logger   Logger
}

// NewService создает новый экземпляр движка доступности
func NewService(schedule ScheduleProvider, bookings BookingStore, cfg Config, logger Logger) *Service {
	return &Service{
		schedule: schedule,
		bookings: bookings,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetWorkingDay определяет, работает ли барбер в дату date и в какие часы.
// Отпуск важнее расписания. Отсутствие строки расписания значит выходной.
func (s *Service) GetWorkingDay(ctx context.Context, barberID int64, date time.Time) (*models.WorkingDay, error) {
	day := domain.DateOnly(date)
	result := &models.WorkingDay{
		Date:      day,
		DayOfWeek: domain.DayOfWeek(day),
	}

	// 1. Отпуск
	vacation, err := s.schedule.GetVacation(ctx, barberID)
	switch {
	case err == nil:
		if vacation.Covers(day) {
			result.Reason = models.ReasonVacation
			result.ReturnDate = ptr.Ptr(vacation.ReturnDate())
			return result, nil
		}
	case errors.Is(err, scheduleRepo.ErrVacationNotFound):
	default:
		s.logger.Error("GetWorkingDay: failed to get vacation for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get vacation: %w", ErrInternal, err)
	}

	// 2. Рабочие часы по дню недели
	hours, err := s.schedule.GetWorkingHours(ctx, barberID, result.DayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			result.Reason = models.ReasonDayOff
			return result, nil
		}
		s.logger.Error("GetWorkingDay: failed to get working hours for barber=%d, day=%d: %v",
			barberID, result.DayOfWeek, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	if !hours.IsWorking {
		result.Reason = models.ReasonDayOff
		return result, nil
	}

	if !hours.IsValid() {
		// Битая строка расписания (start >= end) трактуется как выходной
		s.logger.Warn("GetWorkingDay: invalid working hours for barber=%d, day=%d: %s-%s",
			barberID, result.DayOfWeek, hours.StartTime, hours.EndTime)
		result.Reason = models.ReasonDayOff
		return result, nil
	}

	start, err := hours.StartTime.On(day)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %w", ErrInternal, err)
	}
	end, err := hours.EndTime.On(day)
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %w", ErrInternal, err)
	}

	result.IsWorking = true
	result.WorkStart = hours.StartTime
	result.WorkEnd = hours.EndTime
	result.Start = start
	result.End = end
	return result, nil
}

// ListAvailableSlots возвращает свободные слоты барбера на дату, разложенные по утру/дню/вечеру.
// Выходной день или отпуск не ошибка: IsWorking=false и пустые корзины.
func (s *Service) ListAvailableSlots(ctx context.Context, req *models.SlotRequest) (*models.DaySlots, error) {
	if err := validateSlotRequest(req); err != nil {
		s.logger.Warn("ListAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day, err := s.GetWorkingDay(ctx, req.BarberID, req.Date)
	if err != nil {
		return nil, err
	}

	result := &models.DaySlots{
		WorkingDay: *day,
		DayName:    domain.DayName(day.DayOfWeek),
		Slots:      domain.NewSlotBuckets(),
	}

	if !day.IsWorking {
		result.Message = day.NotWorkingMessage()
		return result, nil
	}

	interval := time.Duration(req.IntervalMinutes) * time.Minute
	duration := time.Duration(req.DurationMinutes) * time.Minute

	candidates := generateCandidates(day.Start, day.End, interval, duration, s.cfg.StrictClosingTime)
	candidates = filterFuture(candidates, req.Now)
	if len(candidates) == 0 {
		return result, nil
	}

	// Берём бронирования, которые могут пересечься хотя бы с одним кандидатом
	windowEnd := candidates[len(candidates)-1].Add(duration)
	bookings, err := s.bookings.ListActiveByBarber(ctx, req.BarberID, candidates[0], windowEnd)
	if err != nil {
		s.logger.Error("ListAvailableSlots: failed to get bookings for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	free := filterFree(candidates, duration, bookings)
	result.Slots = bucketize(free)

	s.logger.Info("ListAvailableSlots: barber=%d, date=%s, candidates=%d, free=%d",
		req.BarberID, day.Date.Format(domain.DateFormat), len(candidates), len(free))
	return result, nil
}

// IsIntervalAvailable проверяет, что [Start, End) не пересекается ни с одним неотменённым
// бронированием барбера, кроме ExcludeBookingID. При конфликте возвращает ID бронирования.
func (s *Service) IsIntervalAvailable(ctx context.Context, req *models.IntervalRequest) (*models.IntervalAvailability, error) {
	if err := validateIntervalRequest(req); err != nil {
		s.logger.Warn("IsIntervalAvailable: validation failed: %v", err)
		return nil, err
	}

	bookings, err := s.bookings.ListActiveByBarber(ctx, req.BarberID, req.Start, req.End)
	if err != nil {
		s.logger.Error("IsIntervalAvailable: failed to get bookings for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	if conflict := findConflict(bookings, req.Start, req.End, req.ExcludeBookingID); conflict != nil {
		s.logger.Info("IsIntervalAvailable: barber=%d, %s-%s conflicts with booking id=%d",
			req.BarberID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), conflict.ID)
		return &models.IntervalAvailability{
			Available:            false,
			ConflictingBookingID: ptr.Ptr(conflict.ID),
		}, nil
	}

	return &models.IntervalAvailability{Available: true}, nil
}
