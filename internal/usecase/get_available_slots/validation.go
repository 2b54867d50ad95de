package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxInterval int) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.IntervalMinutes != nil {
		if *req.IntervalMinutes <= 0 || *req.IntervalMinutes > maxInterval {
			return fmt.Errorf("%w: interval must be in (0, %d]", ErrInvalidInput, maxInterval)
		}
	}

	return nil
}

// isDateInPast сравнивает календарные даты в часовом поясе now
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).
		Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}
