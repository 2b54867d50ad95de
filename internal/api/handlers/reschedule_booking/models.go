package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/barberflow/internal/usecase/reschedule_booking"
)

// RescheduleRequest HTTP request model, время в RFC3339 или YYYY-MM-DDTHH:MM:SS
type RescheduleRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID        int64  `json:"id"`
	BarberID  int64  `json:"barberId"`
	Status    string `json:"status"`
	OldStart  string `json:"oldStartTime"`
	OldEnd    string `json:"oldEndTime"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:        resp.ID,
		BarberID:  resp.BarberID,
		Status:    resp.Status,
		OldStart:  resp.OldStart.Format(time.RFC3339),
		OldEnd:    resp.OldEnd.Format(time.RFC3339),
		StartTime: resp.StartTime.Format(time.RFC3339),
		EndTime:   resp.EndTime.Format(time.RFC3339),
	}
}
