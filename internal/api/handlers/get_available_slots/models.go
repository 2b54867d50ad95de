package get_available_slots

import (
	"github.com/m04kA/barberflow/internal/domain"
	getAvailableSlots "github.com/m04kA/barberflow/internal/usecase/get_available_slots"
)

// WorkHours рабочие часы дня
type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slots свободные слоты по частям дня
type Slots struct {
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string     `json:"date"`
	DayOfWeek       int        `json:"dayOfWeek"`
	DayName         string     `json:"dayName"`
	BarberID        int64      `json:"barberId"`
	BarberName      string     `json:"barberName"`
	IsWorking       bool       `json:"isWorking"`
	Message         string     `json:"message,omitempty"`
	ReturnDate      *string    `json:"returnDate,omitempty"`
	WorkHours       *WorkHours `json:"workHours,omitempty"`
	ServiceDuration int        `json:"serviceDuration"`
	Slots           Slots      `json:"slots"`
	TotalAvailable  int        `json:"totalAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DayOfWeek:       resp.DayOfWeek,
		DayName:         resp.DayName,
		BarberID:        resp.BarberID,
		BarberName:      resp.BarberName,
		IsWorking:       resp.IsWorking,
		Message:         resp.Message,
		ServiceDuration: resp.ServiceDuration,
		Slots: Slots{
			Morning:   nonNil(resp.Slots.Morning),
			Afternoon: nonNil(resp.Slots.Afternoon),
			Evening:   nonNil(resp.Slots.Evening),
		},
		TotalAvailable: resp.TotalAvailable,
	}

	if resp.ReturnDate != nil {
		returnDate := resp.ReturnDate.Format(domain.HumanDateFormat)
		result.ReturnDate = &returnDate
	}

	if resp.IsWorking {
		result.WorkHours = &WorkHours{
			Start: resp.WorkStart.String(),
			End:   resp.WorkEnd.String(),
		}
	}

	return result
}

func nonNil(slots []string) []string {
	if slots == nil {
		return []string{}
	}
	return slots
}
