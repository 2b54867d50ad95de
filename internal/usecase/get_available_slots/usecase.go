package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/availability"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/internal/service/catalog"
)

// UseCase use case для получения свободных слотов барбера на дату
type UseCase struct {
	catalog      Catalog
	engine       AvailabilityEngine
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog Catalog,
	engine AvailabilityEngine,
	settings Settings,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.DefaultIntervalMinutes <= 0 {
		settings.DefaultIntervalMinutes = domain.DefaultIntervalMinutes
	}
	if settings.DefaultServiceDurationMinutes <= 0 {
		settings.DefaultServiceDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if settings.MaxIntervalMinutes <= 0 {
		settings.MaxIntervalMinutes = domain.MaxIntervalMinutes
	}

	return &UseCase{
		catalog:      catalog,
		engine:       engine,
		settings:     settings,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: barber=%d, date=%s, service=%v, interval=%v",
		req.BarberID, req.Date.Format(domain.DateFormat), req.ServiceID, req.IntervalMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.settings.MaxIntervalMinutes); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и текущее время в часовом поясе салона
	now := uc.timeProvider.Now().In(uc.settings.Location)
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.settings.Location)

	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем барбера
	barber, err := uc.catalog.GetBarber(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, catalog.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	// 4. Длительность услуги (неизвестная услуга -> длительность по умолчанию)
	duration := uc.serviceDuration(ctx, req.ServiceID)

	interval := uc.settings.DefaultIntervalMinutes
	if req.IntervalMinutes != nil {
		interval = *req.IntervalMinutes
	}

	// 5. Считаем слоты
	daySlots, err := uc.engine.ListAvailableSlots(ctx, &models.SlotRequest{
		BarberID:        barber.ID,
		Date:            date,
		DurationMinutes: duration,
		IntervalMinutes: interval,
		Now:             now,
	})
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: engine error for barber=%d: %v", barber.ID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	return &Response{
		Date:            daySlots.Date,
		DayOfWeek:       daySlots.DayOfWeek,
		DayName:         daySlots.DayName,
		BarberID:        barber.ID,
		BarberName:      barber.FullName,
		IsWorking:       daySlots.IsWorking,
		Message:         daySlots.Message,
		ReturnDate:      daySlots.ReturnDate,
		WorkStart:       daySlots.WorkStart,
		WorkEnd:         daySlots.WorkEnd,
		ServiceDuration: duration,
		Slots:           daySlots.Slots,
		TotalAvailable:  daySlots.Slots.Total(),
	}, nil
}

func (uc *UseCase) serviceDuration(ctx context.Context, serviceID *int64) int {
	if serviceID == nil {
		return uc.settings.DefaultServiceDurationMinutes
	}

	service, err := uc.catalog.GetService(ctx, *serviceID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d unavailable, using default duration: %v", *serviceID, err)
		return uc.settings.DefaultServiceDurationMinutes
	}

	if service.DurationMinutes <= 0 {
		return uc.settings.DefaultServiceDurationMinutes
	}
	return service.DurationMinutes
}
