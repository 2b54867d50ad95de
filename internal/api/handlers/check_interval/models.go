package check_interval

// IntervalAvailabilityResponse HTTP response model
type IntervalAvailabilityResponse struct {
	Available            bool   `json:"available"`
	ConflictingBookingID *int64 `json:"conflictingBookingId,omitempty"`
}
