package availability

import (
	"time"

	"github.com/m04kA/barberflow/internal/domain"
)

// generateCandidates генерирует сетку слотов от start с шагом interval, пока слот начинается раньше end.
// При strictClosing слот должен ещё и закончиться (slot+duration) не позже end.
func generateCandidates(start, end time.Time, interval, duration time.Duration, strictClosing bool) []time.Time {
	candidates := make([]time.Time, 0)

	for current := start; current.Before(end); current = current.Add(interval) {
		if strictClosing && current.Add(duration).After(end) {
			break
		}
		candidates = append(candidates, current)
	}

	return candidates
}

// filterFuture оставляет только слоты строго позже now
func filterFuture(slots []time.Time, now time.Time) []time.Time {
	result := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		if slot.After(now) {
			result = append(result, slot)
		}
	}
	return result
}

// filterFree убирает слоты, интервал [slot, slot+duration) которых пересекается
// с неотменённым бронированием барбера
func filterFree(slots []time.Time, duration time.Duration, bookings []*domain.Booking) []time.Time {
	result := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		if findConflict(bookings, slot, slot.Add(duration), nil) == nil {
			result = append(result, slot)
		}
	}
	return result
}

// findConflict возвращает первое бронирование, пересекающееся с [start, end).
// Отменённые бронирования и excludeID пропускаются. Касание границ конфликтом не считается.
func findConflict(bookings []*domain.Booking, start, end time.Time, excludeID *int64) *domain.Booking {
	for _, booking := range bookings {
		if !booking.BlocksTime() {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if booking.Overlaps(start, end) {
			return booking
		}
	}
	return nil
}

// bucketize раскладывает слоты по утру/дню/вечеру, сохраняя порядок
func bucketize(slots []time.Time) domain.SlotBuckets {
	buckets := domain.NewSlotBuckets()
	for _, slot := range slots {
		buckets.Add(slot.Hour(), slot.Format(domain.TimeFormat))
	}
	return buckets
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня (в часовом поясе date)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now.In(date.Location())))
}
