package get_available_slots

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/types"
)

// Settings значения по умолчанию из конфигурации
type Settings struct {
	DefaultIntervalMinutes        int
	DefaultServiceDurationMinutes int
	MaxIntervalMinutes            int
	Location                      *time.Location
}

// Request модель запроса на получение свободных слотов
type Request struct {
	BarberID        int64
	Date            time.Time // календарная дата, время суток игнорируется
	ServiceID       *int64    // длительность услуги, по умолчанию из конфигурации
	IntervalMinutes *int      // шаг сетки, по умолчанию из конфигурации
}

// Response модель ответа со свободными слотами на день
type Response struct {
	Date            time.Time
	DayOfWeek       int
	DayName         string
	BarberID        int64
	BarberName      string
	IsWorking       bool
	Message         string
	ReturnDate      *time.Time
	WorkStart       types.TimeString
	WorkEnd         types.TimeString
	ServiceDuration int
	Slots           domain.SlotBuckets
	TotalAvailable  int
}
