package edit_booking

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/types"
)

// Request полная замена полей бронирования из формы редактирования.
// Пустой Status оставляет текущий статус. Код подтверждения не меняется.
type Request struct {
	Actor         *domain.User
	BookingID     int64
	ServiceID     int64
	BarberID      int64
	Date          time.Time        // календарная дата, время суток игнорируется
	StartTime     types.TimeString // "14:30"
	Status        string
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string
}
