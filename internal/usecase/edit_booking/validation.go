package edit_booking

import (
	"fmt"

	"github.com/m04kA/barberflow/internal/domain"
)

// validateRequest валидирует и нормализует запрос, возвращает новый статус (пустой, если не меняется)
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return "", fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil || req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: invalid time %q", ErrInvalidInput, req.StartTime)
	}

	customer := domain.Customer{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Email: req.CustomerEmail,
		Notes: req.Notes,
	}
	if err := customer.Normalize(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req.CustomerName = customer.Name
	req.CustomerPhone = customer.Phone
	req.CustomerEmail = customer.Email
	req.Notes = customer.Notes

	if req.Status == "" {
		return "", nil
	}

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}
	return status, nil
}
