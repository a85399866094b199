package wizard

import (
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// State состояние wizard
type State string

const (
	StateSelectingDate   State = "selecting_date"
	StateSelectingTime   State = "selecting_time"
	StateEnteringDetails State = "entering_details"
	StateConfirmed       State = "confirmed"
)

// Draft данные гостя, вводимые на шаге EnteringDetails.
// Живёт только внутри этого шага: сбрасывается при успехе и при
// навигации назад.
type Draft struct {
	GuestName  string
	GuestEmail string
	GuestPhone string // опционально
	Notes      string // опционально
}

// Snapshot иммутабельный снимок состояния wizard для presentation-слоя.
// Контроллер никогда не отдаёт внутренние структуры по ссылке.
type Snapshot struct {
	State        State
	SelectedDate *time.Time
	Availability *domain.DayAvailability
	SelectedSlot *domain.AvailableSlot
	Draft        *Draft
	Confirmation *domain.BookingConfirmation
	ErrorMessage string
	Loading      bool
}

// Пользовательские сообщения (дословно совпадают с booking-страницей)
const (
	msgEventTypeNotFound = "Event type not found"
	msgLoadFailed        = "Failed to load availability"
	msgNoSlots           = "No available time slots for this date"
	msgNetworkError      = "Network error. Please try again."
	msgBookingFailed     = "Failed to create booking"
)
