package schedmock

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/pkg/ptr"
)

// Host публичный профиль хоста в stub-сервисе
type Host struct {
	Username   string
	FullName   string
	EventTypes []domain.EventType
}

// Store in-memory хранилище stub-сервиса. Персистентности нет намеренно:
// stub живёт ровно столько, сколько процесс разработки или тест.
type Store struct {
	mu       sync.Mutex
	hosts    map[string]*Host
	bookings map[string]*domain.Booking

	slotStartHour int
	slotEndHour   int
	now           func() time.Time
}

// NewStore создает хранилище с демо-хостом "demo" и двумя event types
func NewStore(slotStartHour, slotEndHour int) *Store {
	s := &Store{
		hosts:         make(map[string]*Host),
		bookings:      make(map[string]*domain.Booking),
		slotStartHour: slotStartHour,
		slotEndHour:   slotEndHour,
		now:           time.Now,
	}

	s.hosts["demo"] = &Host{
		Username: "demo",
		FullName: "Demo Host",
		EventTypes: []domain.EventType{
			{
				Name:             "30 Minute Meeting",
				Slug:             "demo-30",
				DurationMinutes:  30,
				Location:         "Google Meet",
				Description:      ptr.Ptr("A quick 30 minute sync."),
				Color:            "#3b82f6",
				IsActive:         true,
				MinNoticeHours:   24,
				MaxDaysInAdvance: 60,
			},
			{
				Name:             "60 Minute Meeting",
				Slug:             "demo-60",
				DurationMinutes:  60,
				Location:         "Zoom",
				Color:            "#10b981",
				IsActive:         true,
				MinNoticeHours:   24,
				MaxDaysInAdvance: 60,
			},
		},
	}

	return s
}

// WithClock подменяет источник времени (для тестов)
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Profile возвращает хоста по username
func (s *Store) Profile(username string) (*Host, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	host, ok := s.hosts[username]
	return host, ok
}

// EventType возвращает активный event type хоста по slug
func (s *Store) EventType(username, slug string) (*domain.EventType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventTypeLocked(username, slug)
}

func (s *Store) eventTypeLocked(username, slug string) (*domain.EventType, bool) {
	host, ok := s.hosts[username]
	if !ok {
		return nil, false
	}
	for i := range host.EventTypes {
		if host.EventTypes[i].Slug == slug && host.EventTypes[i].IsActive {
			return &host.EventTypes[i], true
		}
	}
	return nil, false
}

// SlotsFor генерирует слоты на дату: фиксированная сетка
// [slotStartHour, slotEndHour) UTC с шагом в длительность встречи, минус
// уже забронированные начала. Это детерминированная фикстура, а не
// алгоритм доступности.
func (s *Store) SlotsFor(et *domain.EventType, date time.Time) []domain.AvailableSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[time.Time]bool)
	for _, b := range s.bookings {
		if b.IsConfirmed() && b.EventTypeSlug == et.Slug {
			taken[b.StartTime.UTC()] = true
		}
	}

	step := time.Duration(et.DurationMinutes) * time.Minute
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), s.slotStartHour, 0, 0, 0, time.UTC)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), s.slotEndHour, 0, 0, 0, time.UTC)

	var slots []domain.AvailableSlot
	for start := dayStart; !start.Add(step).After(dayEnd); start = start.Add(step) {
		if taken[start] {
			continue
		}
		slots = append(slots, domain.AvailableSlot{Start: start, End: start.Add(step)})
	}
	return slots
}

// CreateBooking создает бронирование для гостя
func (s *Store) CreateBooking(username, slug string, guestName, guestEmail string, guestPhone, notes *string, start time.Time) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	et, ok := s.eventTypeLocked(username, slug)
	if !ok {
		return nil, fmt.Errorf("event type not found")
	}

	for _, b := range s.bookings {
		if b.IsConfirmed() && b.EventTypeSlug == slug && b.StartTime.Equal(start) {
			return nil, fmt.Errorf("This time slot is no longer available")
		}
	}

	booking := &domain.Booking{
		ID:              uuid.NewString(),
		EventTypeName:   et.Name,
		EventTypeSlug:   et.Slug,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(et.DurationMinutes) * time.Minute),
		DurationMinutes: et.DurationMinutes,
		GuestName:       guestName,
		GuestEmail:      guestEmail,
		GuestPhone:      guestPhone,
		Notes:           notes,
		Location:        et.Location,
		Status:          domain.StatusConfirmed,
		CreatedAt:       s.now(),
	}
	s.bookings[booking.ID] = booking

	return booking, nil
}

// ListBookings возвращает все бронирования (stub односерверный: один владелец)
func (s *Store) ListBookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out
}

// CancelBooking переводит бронирование в cancelled. Запись не удаляется.
func (s *Store) CancelBooking(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return errNotFound
	}
	if booking.IsCancelled() {
		return fmt.Errorf("Booking is already cancelled")
	}
	if !booking.StartTime.After(s.now()) {
		return fmt.Errorf("Past bookings cannot be cancelled")
	}

	booking.Status = domain.StatusCancelled
	return nil
}

// SeedBooking добавляет готовое бронирование (для тестов и демо-данных)
func (s *Store) SeedBooking(b *domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	copied := *b
	s.bookings[b.ID] = &copied
}
