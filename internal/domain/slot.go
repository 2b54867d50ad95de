package domain

// DayPeriod is a bucket of the day used to group slots
type DayPeriod string

const (
	PeriodMorning   DayPeriod = "morning"
	PeriodAfternoon DayPeriod = "afternoon"
	PeriodEvening   DayPeriod = "evening"
)

// PeriodForHour buckets an hour of day: [0,12) morning, [12,17) afternoon, [17,24) evening
func PeriodForHour(hour int) DayPeriod {
	switch {
	case hour < AfternoonStartHour:
		return PeriodMorning
	case hour < EveningStartHour:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// SlotBuckets ordered start times ("HH:MM") grouped by period of day
type SlotBuckets struct {
	Morning   []string
	Afternoon []string
	Evening   []string
}

// NewSlotBuckets returns buckets with non-nil empty slices
func NewSlotBuckets() SlotBuckets {
	return SlotBuckets{
		Morning:   []string{},
		Afternoon: []string{},
		Evening:   []string{},
	}
}

// Add appends a slot into the bucket for hour
func (b *SlotBuckets) Add(hour int, slot string) {
	switch PeriodForHour(hour) {
	case PeriodMorning:
		b.Morning = append(b.Morning, slot)
	case PeriodAfternoon:
		b.Afternoon = append(b.Afternoon, slot)
	default:
		b.Evening = append(b.Evening, slot)
	}
}

// Total returns the number of slots in all buckets
func (b *SlotBuckets) Total() int {
	return len(b.Morning) + len(b.Afternoon) + len(b.Evening)
}

// All returns every slot in chronological order
func (b *SlotBuckets) All() []string {
	all := make([]string, 0, b.Total())
	all = append(all, b.Morning...)
	all = append(all, b.Afternoon...)
	return append(all, b.Evening...)
}
