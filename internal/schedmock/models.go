package schedmock

// Wire-модели контракта. Поля и имена повторяют боевой scheduling service:
// клиентские пакеты должны работать против stub без изменений.

type createBookingRequest struct {
	GuestName  string  `json:"guestName"`
	GuestEmail string  `json:"guestEmail"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	StartTime  string  `json:"startTime"`
}

type availableSlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type eventTypeInfoResponse struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	DurationMinutes int     `json:"durationMinutes"`
	Location        string  `json:"location"`
	Description     *string `json:"description,omitempty"`
}

type dayAvailabilityResponse struct {
	Date           string                  `json:"date"`
	AvailableSlots []availableSlotResponse `json:"availableSlots"`
	EventType      eventTypeInfoResponse   `json:"eventType"`
}

type bookingConfirmationResponse struct {
	BookingID       string  `json:"bookingId"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	EventTypeName   string  `json:"eventTypeName"`
	Location        string  `json:"location"`
	LocationDetails *string `json:"locationDetails,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Message         string  `json:"message"`
}

type bookingResponse struct {
	ID              string  `json:"id"`
	EventTypeName   string  `json:"eventTypeName"`
	EventTypeSlug   string  `json:"eventTypeSlug"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

type publicEventTypeResponse struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
	Location        string  `json:"location"`
	Color           string  `json:"color"`
}

type publicProfileResponse struct {
	Username        string                    `json:"username"`
	FullName        string                    `json:"fullName"`
	ProfileImageURL *string                   `json:"profileImageUrl,omitempty"`
	EventTypes      []publicEventTypeResponse `json:"eventTypes"`
}
