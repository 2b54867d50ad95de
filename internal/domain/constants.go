package domain

// Default configuration values
const (
	DefaultIntervalMinutes        = 30
	DefaultServiceDurationMinutes = 30
	MaxIntervalMinutes            = 240
)

// Slot buckets
const (
	AfternoonStartHour = 12
	EveningStartHour   = 17
)

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 20
	ConfirmationCodePrefix = "MAD-"
	ConfirmationCodeLength = 6
	RecentBookingsLimit    = 5
)

// Admin panel limits, match the column sizes in migrations
const (
	MaxServiceNameLength    = 100
	MaxUsernameLength       = 50
	MaxEmailLength          = 120
	MaxFullNameLength       = 100
	MaxSpecializationLength = 200
	MinPasswordLength       = 6
)

// Time format constants
const (
	TimeFormat          = "15:04"               // HH:MM
	DateFormat          = "2006-01-02"          // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04:05" // calendar drag-and-drop without offset
	HumanDateFormat     = "02/01/2006"
)

// Calendar colors per status (background, border)
var StatusColors = map[BookingStatus][2]string{
	StatusPending:   {"#f59e0b", "#d97706"},
	StatusConfirmed: {"#10b981", "#059669"},
	StatusCompleted: {"#3b82f6", "#2563eb"},
	StatusCancelled: {"#6b7280", "#4b5563"},
}

// CalendarTextColor text color for every calendar event
const CalendarTextColor = "#ffffff"
