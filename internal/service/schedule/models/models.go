package models

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// DayScheduleResponse расписание на один день недели
type DayScheduleResponse struct {
	DayOfWeek int     `json:"dayOfWeek"`
	DayName   string  `json:"dayName"`
	IsWorking bool    `json:"isWorking"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// VacationResponse отпуск барбера
type VacationResponse struct {
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	ReturnDate string `json:"returnDate"`
}

// BarberScheduleResponse недельное расписание и отпуск
type BarberScheduleResponse struct {
	BarberID int64                 `json:"barberId"`
	Week     []DayScheduleResponse `json:"week"`
	Vacation *VacationResponse     `json:"vacation,omitempty"`
}

// SetWorkingHoursRequest изменение расписания на день недели
type SetWorkingHoursRequest struct {
	BarberID  int64
	DayOfWeek int
	StartTime string // HH:MM
	EndTime   string // HH:MM
	IsWorking bool
}

// SetVacationRequest установка отпуска
type SetVacationRequest struct {
	BarberID  int64
	StartDate time.Time
	EndDate   time.Time
}

// FromDomainDay конвертирует строку расписания
func FromDomainDay(day int, hours *domain.WorkingHours) DayScheduleResponse {
	resp := DayScheduleResponse{
		DayOfWeek: day,
		DayName:   domain.DayName(day),
	}
	if hours == nil {
		return resp
	}

	resp.IsWorking = hours.IsWorking
	if !hours.StartTime.IsZero() {
		start := hours.StartTime.String()
		resp.StartTime = &start
	}
	if !hours.EndTime.IsZero() {
		end := hours.EndTime.String()
		resp.EndTime = &end
	}
	return resp
}

// FromDomainVacation конвертирует отпуск
func FromDomainVacation(v *domain.Vacation) *VacationResponse {
	if v == nil {
		return nil
	}
	return &VacationResponse{
		StartDate:  v.StartDate.Format(domain.DateFormat),
		EndDate:    v.EndDate.Format(domain.DateFormat),
		ReturnDate: v.ReturnDate().Format(domain.DateFormat),
	}
}
