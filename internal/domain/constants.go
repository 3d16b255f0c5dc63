package domain

// Business validation constants
const (
	MaxCustomerNameLength  = 120
	MaxCustomerEmailLength = 254

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
)

// Pagination defaults for list endpoints
const (
	DefaultSlotsLimit    = 20
	MaxSlotsLimit        = 100
	DefaultBookingsLimit = 20
	MaxBookingsLimit     = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
