package domain

// Booking window constraints enforced by the wizard before any network call.
// The service applies finer notice-hour rules; the picker only bounds whole
// calendar days.
const (
	MinAdvanceDays = 1  // earliest bookable day is tomorrow
	MaxAdvanceDays = 60 // latest bookable day is today+60
)

// Business validation constants
const (
	MaxGuestNameLength = 200
	MaxNotesLength     = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
