package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed or cancelled reservation as seen by the
// meeting owner. The scheduling service owns the record; this copy is
// reconciled against server responses and never trusted past the next fetch.
type Booking struct {
	ID              string
	EventTypeName   string
	EventTypeSlug   string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	GuestName       string
	GuestEmail      string
	GuestPhone      *string
	Notes           *string
	Location        string
	Status          BookingStatus
	CreatedAt       time.Time
}

// IsConfirmed returns true if the booking is still active
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsUpcoming returns true if the booking is confirmed and starts at or after now.
// Comparison is instant-based, never string-based.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.IsConfirmed() && !b.StartTime.Before(now)
}

// IsPast returns true if the booking is confirmed and already started
func (b *Booking) IsPast(now time.Time) bool {
	return b.IsConfirmed() && b.StartTime.Before(now)
}

// CanBeCancelled returns true if the booking may enter the cancel flow:
// only confirmed bookings that start strictly in the future qualify.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return b.IsConfirmed() && b.StartTime.After(now)
}

// BookingConfirmation is the server-issued receipt for a created booking.
// Immutable once received; it defines the wizard's terminal state.
type BookingConfirmation struct {
	BookingID       string
	GuestName       string
	GuestEmail      string
	StartTime       time.Time
	EndTime         time.Time
	EventTypeName   string
	Location        string
	LocationDetails *string
	DurationMinutes int
	Status          BookingStatus
	Message         string
}
