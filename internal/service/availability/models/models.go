package models

import (
	"fmt"
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/types"
)

// SlotRequest запрос списка свободных слотов на день
type SlotRequest struct {
	BarberID        int64
	Date            time.Time // календарная дата в часовом поясе салона
	DurationMinutes int       // длительность услуги
	IntervalMinutes int       // шаг сетки слотов
	Now             time.Time
}

// NotWorkingReason причина, по которой барбер не принимает в этот день
type NotWorkingReason string

const (
	ReasonNone     NotWorkingReason = ""
	ReasonVacation NotWorkingReason = "vacation"
	ReasonDayOff   NotWorkingReason = "day_off"
)

// WorkingDay рабочее окно барбера на конкретную дату
type WorkingDay struct {
	Date       time.Time
	DayOfWeek  int
	IsWorking  bool
	Reason     NotWorkingReason
	ReturnDate *time.Time // только для отпуска: день выхода на работу
	WorkStart  types.TimeString
	WorkEnd    types.TimeString
	Start      time.Time // WorkStart в дату Date
	End        time.Time // WorkEnd в дату Date
}

// NotWorkingMessage сообщение для клиента, когда барбер не принимает
func (d *WorkingDay) NotWorkingMessage() string {
	if d.Reason == ReasonVacation && d.ReturnDate != nil {
		return fmt.Sprintf("Барбер в отпуске, вернётся %s", d.ReturnDate.Format(domain.HumanDateFormat))
	}
	return fmt.Sprintf("Барбер не работает в этот день (%s)", domain.DayName(d.DayOfWeek))
}

// DaySlots результат listAvailableSlots
type DaySlots struct {
	WorkingDay
	DayName string
	Message string
	Slots   domain.SlotBuckets
}

// IntervalRequest проверка произвольного интервала [Start, End)
type IntervalRequest struct {
	BarberID         int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID *int64 // собственное бронирование при переносе
}

// IntervalAvailability результат isIntervalAvailable
type IntervalAvailability struct {
	Available            bool
	ConflictingBookingID *int64
}
