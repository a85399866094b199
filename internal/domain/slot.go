package domain

import "time"

// AvailableSlot represents one bookable time window for a single calendar
// date. Immutable; produced fresh on every date query and never merged
// across dates.
type AvailableSlot struct {
	Start time.Time
	End   time.Time
}

// Equal reports whether two slots describe the same instant window
func (s AvailableSlot) Equal(other AvailableSlot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

// DayAvailability is the response envelope for one (event type, date) query.
// Slots keep the server's chronological order; tie-breaks belong to the
// server, so consumers must not resort them.
type DayAvailability struct {
	Date      string // YYYY-MM-DD, the queried calendar date
	EventType EventTypeInfo
	Slots     []AvailableSlot
}

// HasSlots returns true if at least one slot is bookable on the queried date
func (d *DayAvailability) HasSlots() bool {
	return len(d.Slots) > 0
}
