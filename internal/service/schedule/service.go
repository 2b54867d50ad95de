package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/barberflow/internal/domain"
	scheduleRepo "github.com/m04kA/barberflow/internal/infra/storage/schedule"
	"github.com/m04kA/barberflow/internal/service/catalog"
	"github.com/m04kA/barberflow/internal/service/schedule/models"
	"github.com/m04kA/barberflow/pkg/types"
)

// Service управление рабочими часами и отпусками барберов (админка)
type Service struct {
	repo    ScheduleRepository
	barbers BarberProvider
	logger  Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(repo ScheduleRepository, barbers BarberProvider, logger Logger) *Service {
	return &Service{
		repo:    repo,
		barbers: barbers,
		logger:  logger,
	}
}

// GetBarberSchedule возвращает расписание на все 7 дней (дни без строки считаются выходными) и отпуск
func (s *Service) GetBarberSchedule(ctx context.Context, barberID int64) (*models.BarberScheduleResponse, error) {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return nil, err
	}

	week, err := s.repo.GetWeek(ctx, barberID)
	if err != nil {
		s.logger.Error("GetBarberSchedule: repository error for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberSchedule - get week: %v", ErrInternal, err)
	}

	byDay := make(map[int]*domain.WorkingHours, len(week))
	for _, h := range week {
		byDay[h.DayOfWeek] = h
	}

	resp := &models.BarberScheduleResponse{
		BarberID: barberID,
		Week:     make([]models.DayScheduleResponse, 0, 7),
	}
	for day := 0; day < 7; day++ {
		resp.Week = append(resp.Week, models.FromDomainDay(day, byDay[day]))
	}

	vacation, err := s.repo.GetVacation(ctx, barberID)
	switch {
	case err == nil:
		resp.Vacation = models.FromDomainVacation(vacation)
	case errors.Is(err, scheduleRepo.ErrVacationNotFound):
	default:
		s.logger.Error("GetBarberSchedule: failed to get vacation for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: GetBarberSchedule - get vacation: %v", ErrInternal, err)
	}

	return resp, nil
}

// SetWorkingHours задает расписание барбера на день недели
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.DayScheduleResponse, error) {
	hours, err := validateWorkingHours(req)
	if err != nil {
		s.logger.Warn("SetWorkingHours: validation failed for barber=%d: %v", req.BarberID, err)
		return nil, err
	}

	if err := s.ensureBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	saved, err := s.repo.UpsertWorkingHours(ctx, hours)
	if err != nil {
		s.logger.Error("SetWorkingHours: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWorkingHours: barber=%d, day=%d, working=%t, %s-%s",
		saved.BarberID, saved.DayOfWeek, saved.IsWorking, saved.StartTime, saved.EndTime)

	resp := models.FromDomainDay(saved.DayOfWeek, saved)
	return &resp, nil
}

// SetVacation задает отпуск барбера (заменяет предыдущий)
func (s *Service) SetVacation(ctx context.Context, req *models.SetVacationRequest) (*models.VacationResponse, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if domain.DateOnly(req.EndDate).Before(domain.DateOnly(req.StartDate)) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if err := s.ensureBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	vacation := &domain.Vacation{
		BarberID:  req.BarberID,
		StartDate: domain.DateOnly(req.StartDate),
		EndDate:   domain.DateOnly(req.EndDate),
	}

	if err := s.repo.SetVacation(ctx, vacation); err != nil {
		s.logger.Error("SetVacation: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: SetVacation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetVacation: barber=%d on vacation %s..%s", req.BarberID,
		vacation.StartDate.Format(domain.DateFormat), vacation.EndDate.Format(domain.DateFormat))
	return models.FromDomainVacation(vacation), nil
}

// ClearVacation удаляет отпуск барбера
func (s *Service) ClearVacation(ctx context.Context, barberID int64) error {
	if err := s.ensureBarber(ctx, barberID); err != nil {
		return err
	}

	if err := s.repo.DeleteVacation(ctx, barberID); err != nil {
		if errors.Is(err, scheduleRepo.ErrVacationNotFound) {
			return ErrVacationNotFound
		}
		s.logger.Error("ClearVacation: repository error for barber=%d: %v", barberID, err)
		return fmt.Errorf("%w: ClearVacation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearVacation: barber=%d vacation removed", barberID)
	return nil
}

func (s *Service) ensureBarber(ctx context.Context, barberID int64) error {
	if _, err := s.barbers.GetBarber(ctx, barberID); err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			s.logger.Warn("schedule: barber id=%d not found", barberID)
			return ErrBarberNotFound
		}
		return fmt.Errorf("%w: get barber: %v", ErrInternal, err)
	}
	return nil
}

func validateWorkingHours(req *models.SetWorkingHoursRequest) (*domain.WorkingHours, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be in [0,6]", ErrInvalidInput)
	}

	hours := &domain.WorkingHours{
		BarberID:  req.BarberID,
		DayOfWeek: req.DayOfWeek,
		IsWorking: req.IsWorking,
	}

	// Для выходного время можно не указывать
	if !req.IsWorking && req.StartTime == "" && req.EndTime == "" {
		return hours, nil
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	hours.StartTime = start
	hours.EndTime = end

	if !hours.IsValid() {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return hours, nil
}
