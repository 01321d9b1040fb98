package domain

// DateFormat YYYY-MM-DD
const DateFormat = "2006-01-02"

// Business validation constants
const (
	MinBookingDurationMinutes   = 30
	MaxBookingDurationMinutes   = 12 * 60
	MaxSpecialRequestsLength    = 1000
	MaxCancellationReasonLength = 500
	MaxRejectionReasonLength    = 500
	MaxMeetingLocationLength    = 255
	MaxBookingRequestHours      = 12
	MaxHourlyRate               = 100000
	MaxSlotsPerDay              = 48
)

// Default configuration values
const (
	DefaultPlatformFeePercent = 20.0
)
