package availability

import (
	"fmt"

	"github.com/m04kA/barberflow/internal/service/availability/models"
)

func validateSlotRequest(req *models.SlotRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidRequest)
	}
	if req.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval must be positive", ErrInvalidRequest)
	}
	if isDateInPast(req.Date, req.Now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidRequest)
	}
	return nil
}

func validateIntervalRequest(req *models.IntervalRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidRequest)
	}
	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidRequest)
	}
	return nil
}
