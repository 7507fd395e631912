package domain

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeLayout = "2006-01-02 15:04"
)

// Default schedule values
const (
	DefaultTimezone          = "UTC"
	DefaultOpeningTime       = "09:00"
	DefaultLastSlotStart     = "16:00"
	DefaultClosingTime       = "17:00"
	DefaultSlotStepMinutes   = 30
	DefaultWeekdayFrom       = 1 // Monday
	DefaultWeekdayTo         = 6 // Saturday
	DefaultDailyRequestLimit = 8
)

// Business validation constants
const (
	MinSlotStepMinutes     = 5
	MaxSlotStepMinutes     = 240
	MaxDailyRequestLimit   = 500
	MaxReasonLength        = 1000
	MaxNameLength          = 200
	MaxServiceDurationMins = 12 * 60
)
