package create_booking

import (
	"fmt"

	"github.com/m04kA/barberflow/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	customer := domain.Customer{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
		Email: req.CustomerEmail,
		Notes: req.Notes,
	}
	if err := customer.Normalize(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req.CustomerName = customer.Name
	req.CustomerPhone = customer.Phone
	req.CustomerEmail = customer.Email
	req.Notes = customer.Notes

	return nil
}

// validateStaffRequest дополнительно разбирает статус, пустой статус означает pending
func validateStaffRequest(req *StaffRequest) (domain.BookingStatus, error) {
	if err := validateRequest(&req.Request); err != nil {
		return "", err
	}

	if req.Status == "" {
		return domain.StatusPending, nil
	}

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}
	return status, nil
}
