package models

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// Request модели

// CalendarRequest выборка событий календаря. Пустые поля не фильтруют.
type CalendarRequest struct {
	Start    *time.Time
	End      *time.Time
	BarberID *int64
}

// MonthRequest бронирования за месяц
type MonthRequest struct {
	Year     int
	Month    int
	BarberID *int64
	Status   *string
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	BookingID int64
	Status    string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64   `json:"id"`
	ServiceID        int64   `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	BarberID         int64   `json:"barberId"`
	BarberName       string  `json:"barberName"`
	Date             string  `json:"date"`      // "2025-10-15"
	Time             string  `json:"time"`      // "10:00"
	StartTime        string  `json:"startTime"` // RFC3339
	EndTime          string  `json:"endTime"`   // RFC3339
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	CustomerEmail    *string `json:"customerEmail,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	ConfirmationCode string  `json:"confirmationCode"`
	CreatedAt        string  `json:"createdAt"`
}

// CalendarEventProps дополнительные поля события FullCalendar
type CalendarEventProps struct {
	BarberID         int64   `json:"barberId"`
	BarberName       string  `json:"barberName"`
	ServiceName      string  `json:"serviceName"`
	CustomerName     string  `json:"customerName"`
	CustomerPhone    string  `json:"customerPhone"`
	CustomerEmail    *string `json:"customerEmail,omitempty"`
	Status           string  `json:"status"`
	ConfirmationCode string  `json:"confirmationCode"`
	Notes            *string `json:"notes,omitempty"`
}

// CalendarEvent событие в формате FullCalendar
type CalendarEvent struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Start           string             `json:"start"`
	End             string             `json:"end"`
	BackgroundColor string             `json:"backgroundColor"`
	BorderColor     string             `json:"borderColor"`
	TextColor       string             `json:"textColor"`
	ExtendedProps   CalendarEventProps `json:"extendedProps"`
}

// DashboardResponse сводка для главной страницы админки
type DashboardResponse struct {
	TodayBookings   int               `json:"todayBookings"`
	PendingBookings int               `json:"pendingBookings"`
	TotalBookings   int               `json:"totalBookings"`
	ActiveBarbers   int               `json:"activeBarbers"`
	ActiveServices  int               `json:"activeServices"`
	RecentBookings  []BookingResponse `json:"recentBookings"`
}

// RankedItem строка рейтинга барберов или услуг
type RankedItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Bookings int    `json:"bookings"`
}

// StatisticsResponse страница статистики (только администратор)
type StatisticsResponse struct {
	TodayBookings   int          `json:"todayBookings"`
	Year            int          `json:"year"`
	YearlyBookings  int          `json:"yearlyBookings"` // созданные с 1 января
	BarberRanking   []RankedItem `json:"barberRanking"`
	PopularServices []RankedItem `json:"popularServices"`
}

// Конвертеры

// FromDomainRanking конвертирует рейтинг
func FromDomainRanking(ranking []domain.RankedCount) []RankedItem {
	result := make([]RankedItem, 0, len(ranking))
	for _, r := range ranking {
		result = append(result, RankedItem{ID: r.ID, Name: r.Name, Bookings: r.Bookings})
	}
	return result
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		BarberID:         b.BarberID,
		BarberName:       b.BarberName,
		Date:             b.StartTime.Format(domain.DateFormat),
		Time:             b.StartTime.Format(domain.TimeFormat),
		StartTime:        b.StartTime.Format(time.RFC3339),
		EndTime:          b.EndTime.Format(time.RFC3339),
		DurationMinutes:  b.DurationMinutes(),
		Status:           string(b.Status),
		CustomerName:     b.CustomerName,
		CustomerPhone:    b.CustomerPhone,
		CustomerEmail:    b.CustomerEmail,
		Notes:            b.Notes,
		ConfirmationCode: b.ConfirmationCode,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return result
}

// ToCalendarEvent конвертирует бронирование в событие календаря
func ToCalendarEvent(b *domain.Booking) CalendarEvent {
	colors := domain.StatusColors[b.Status]
	return CalendarEvent{
		ID:              b.ID,
		Title:           b.CustomerName + " - " + b.ServiceName,
		Start:           b.StartTime.Format(time.RFC3339),
		End:             b.EndTime.Format(time.RFC3339),
		BackgroundColor: colors[0],
		BorderColor:     colors[1],
		TextColor:       domain.CalendarTextColor,
		ExtendedProps: CalendarEventProps{
			BarberID:         b.BarberID,
			BarberName:       b.BarberName,
			ServiceName:      b.ServiceName,
			CustomerName:     b.CustomerName,
			CustomerPhone:    b.CustomerPhone,
			CustomerEmail:    b.CustomerEmail,
			Status:           string(b.Status),
			ConfirmationCode: b.ConfirmationCode,
			Notes:            b.Notes,
		},
	}
}

// ToDomainBookingStatus конвертирует строку в статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, bool) {
	status := domain.BookingStatus(s)
	return status, status.IsValid()
}
