package create_booking

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	createBooking "github.com/m04kA/barberflow/internal/usecase/create_booking"
	"github.com/m04kA/barberflow/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	BarberID      int64   `json:"barberId"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Time          string  `json:"time"` // HH:MM
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		BarberID:      r.BarberID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
	}, nil
}

// StaffBookingRequest запись из админки, статус по умолчанию pending
type StaffBookingRequest struct {
	CreateBookingRequest
	Status string `json:"status,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *StaffBookingRequest) ToUseCaseRequest() (*createBooking.StaffRequest, error) {
	req, err := r.CreateBookingRequest.ToUseCaseRequest()
	if err != nil {
		return nil, err
	}
	return &createBooking.StaffRequest{Request: *req, Status: r.Status}, nil
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	ConfirmationCode string  `json:"confirmationCode"`
	Status           string  `json:"status"`
	ServiceID        int64   `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	BarberID         int64   `json:"barberId"`
	BarberName       string  `json:"barberName"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Duration         int     `json:"duration"`
	Price            float64 `json:"price"`
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	CustomerEmail    *string `json:"customerEmail,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ConfirmationCode: resp.ConfirmationCode,
		Status:           resp.Status,
		ServiceID:        resp.ServiceID,
		ServiceName:      resp.ServiceName,
		BarberID:         resp.BarberID,
		BarberName:       resp.BarberName,
		Date:             resp.StartTime.Format(domain.DateFormat),
		Time:             resp.StartTime.Format(domain.TimeFormat),
		StartTime:        resp.StartTime.Format(time.RFC3339),
		EndTime:          resp.EndTime.Format(time.RFC3339),
		Duration:         resp.DurationMinutes,
		Price:            resp.Price,
		CustomerName:     resp.CustomerName,
		CustomerPhone:    resp.CustomerPhone,
		CustomerEmail:    resp.CustomerEmail,
		Notes:            resp.Notes,
	}
}
