package domain

// TopServicesLimit services shown in the popularity ranking
const TopServicesLimit = 5

// RankedCount number of bookings of a barber or a service
type RankedCount struct {
	ID       int64
	Name     string
	Bookings int
}
