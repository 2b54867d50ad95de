package barber_schedule

// WorkingHoursRequest тело PUT /schedule/{day}
type WorkingHoursRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsWorking bool   `json:"isWorking"`
}

// VacationRequest тело PUT /vacation, даты YYYY-MM-DD
type VacationRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
