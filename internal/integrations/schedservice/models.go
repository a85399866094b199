package schedservice

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// CreateBookingRequest запрос на создание бронирования (POST .../book)
type CreateBookingRequest struct {
	GuestName  string    `json:"guestName"`
	GuestEmail string    `json:"guestEmail"`
	GuestPhone *string   `json:"guestPhone,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	StartTime  time.Time `json:"startTime"`
}

// ErrorResponse модель ошибки от scheduling service
type ErrorResponse struct {
	Error string `json:"error"`
}

// Wire-модели ответов. Все timestamps приходят как ISO-8601 строки и
// парсятся в time.Time с сохранением исходного инстанта.

type availableSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type eventTypeInfoDTO struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	DurationMinutes int     `json:"durationMinutes"`
	Location        string  `json:"location"`
	Description     *string `json:"description,omitempty"`
}

type dayAvailabilityDTO struct {
	Date           string             `json:"date"`
	AvailableSlots []availableSlotDTO `json:"availableSlots"`
	EventType      eventTypeInfoDTO   `json:"eventType"`
}

type bookingConfirmationDTO struct {
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

type bookingDTO struct {
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

type publicEventTypeDTO struct {
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
	Location        string  `json:"location"`
	Color           string  `json:"color"`
}

type publicProfileDTO struct {
	Username        string               `json:"username"`
	FullName        string               `json:"fullName"`
	ProfileImageURL *string              `json:"profileImageUrl,omitempty"`
	EventTypes      []publicEventTypeDTO `json:"eventTypes"`
}

func parseInstant(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad %s timestamp %q: %v", ErrInvalidResponse, field, value, err)
	}
	return t, nil
}

func (d *dayAvailabilityDTO) toDomain() (*domain.DayAvailability, error) {
	slots := make([]domain.AvailableSlot, 0, len(d.AvailableSlots))
	for _, s := range d.AvailableSlots {
		start, err := parseInstant("slot.start", s.Start)
		if err != nil {
			return nil, err
		}
		end, err := parseInstant("slot.end", s.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.AvailableSlot{Start: start, End: end})
	}

	return &domain.DayAvailability{
		Date: d.Date,
		EventType: domain.EventTypeInfo{
			Name:            d.EventType.Name,
			Slug:            d.EventType.Slug,
			DurationMinutes: d.EventType.DurationMinutes,
			Location:        d.EventType.Location,
			Description:     d.EventType.Description,
		},
		Slots: slots,
	}, nil
}

func (d *bookingConfirmationDTO) toDomain() (*domain.BookingConfirmation, error) {
	start, err := parseInstant("startTime", d.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseInstant("endTime", d.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.BookingConfirmation{
		BookingID:       d.BookingID,
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		StartTime:       start,
		EndTime:         end,
		EventTypeName:   d.EventTypeName,
		Location:        d.Location,
		LocationDetails: d.LocationDetails,
		DurationMinutes: d.DurationMinutes,
		Status:          domain.BookingStatus(d.Status),
		Message:         d.Message,
	}, nil
}

func (d *bookingDTO) toDomain() (*domain.Booking, error) {
	start, err := parseInstant("startTime", d.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseInstant("endTime", d.EndTime)
	if err != nil {
		return nil, err
	}
	created, err := parseInstant("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:              d.ID,
		EventTypeName:   d.EventTypeName,
		EventTypeSlug:   d.EventTypeSlug,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: d.DurationMinutes,
		GuestName:       d.GuestName,
		GuestEmail:      d.GuestEmail,
		GuestPhone:      d.GuestPhone,
		Notes:           d.Notes,
		Location:        d.Location,
		Status:          domain.BookingStatus(d.Status),
		CreatedAt:       created,
	}, nil
}

func (d *publicProfileDTO) toDomain() *domain.PublicProfile {
	eventTypes := make([]domain.EventType, 0, len(d.EventTypes))
	for _, et := range d.EventTypes {
		eventTypes = append(eventTypes, domain.EventType{
			Name:            et.Name,
			Slug:            et.Slug,
			DurationMinutes: et.DurationMinutes,
			Location:        et.Location,
			Description:     et.Description,
			Color:           et.Color,
			IsActive:        true, // публичный профиль отдаёт только активные event types
		})
	}

	return &domain.PublicProfile{
		Username:        d.Username,
		FullName:        d.FullName,
		ProfileImageURL: d.ProfileImageURL,
		EventTypes:      eventTypes,
	}
}
