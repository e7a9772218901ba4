package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 240 // 4 hours
	DefaultTaxRate             = 0.0 // injected via configuration, no implicit tax
)

// Business validation constants
const (
	MinSlotDurationMinutes   = 60
	MaxSlotDurationMinutes   = 720 // 12 hours
	MaxSlotRangeDays         = 92  // ~3 months of slots per request
	MaxPurposeLength         = 200
	MaxSpecialRequestsLength = 500
	MinutesPerDay            = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
