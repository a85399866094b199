package domain

// EventType is a reusable meeting template owned by a host. Read-only for
// this client: it renders context and bounds the date picker.
type EventType struct {
	Name             string
	Slug             string
	DurationMinutes  int
	Location         string
	Description      *string
	Color            string
	IsActive         bool
	BufferMinutes    int
	MinNoticeHours   int
	MaxDaysInAdvance int
}

// EventTypeInfo is the subset of EventType carried inside availability
// responses and shown on the booking page header.
type EventTypeInfo struct {
	Name            string
	Slug            string
	DurationMinutes int
	Location        string
	Description     *string
}

// PublicProfile is a host's public booking page: display data plus the
// active event types a guest can pick from.
type PublicProfile struct {
	Username        string
	FullName        string
	ProfileImageURL *string
	EventTypes      []EventType
}
