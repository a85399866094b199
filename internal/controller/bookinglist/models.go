package bookinglist

import "github.com/m04kA/SMC-SchedulingClient/internal/domain"

// Filter вид выборки из коллекции бронирований.
// Выборки вычисляются от wall-clock "сейчас" в момент чтения, не в момент
// загрузки: бронирование само "переезжает" из upcoming в past.
type Filter string

const (
	FilterUpcoming  Filter = "upcoming"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
	FilterAll       Filter = "all"
)

// CancelState состояние процесса отмены одного бронирования.
// Автомат per-booking, не глобальный: отмены разных бронирований
// независимы.
type CancelState string

const (
	// CancelStateNone отмена не запрашивалась
	CancelStateNone CancelState = ""
	// CancelStatePending ожидает подтверждения пользователя
	CancelStatePending CancelState = "pending_confirmation"
	// CancelStateCancelling сетевой вызов в полёте
	CancelStateCancelling CancelState = "cancelling"
	// CancelStateFailed отмена не удалась; бронирование вернулось в
	// исходное состояние, причина показана
	CancelStateFailed CancelState = "cancel_failed"
)

// BookingView бронирование вместе с состоянием его отмены
type BookingView struct {
	Booking      domain.Booking
	CancelState  CancelState
	CancelReason string // причина последней неудачной отмены
}

// Stats счётчики для карточек дашборда
type Stats struct {
	Upcoming       int
	TotalConfirmed int
	Cancelled      int
}

// Snapshot иммутабельный снимок состояния списка для presentation-слоя
type Snapshot struct {
	Loading      bool
	Loaded       bool
	Filter       Filter
	Bookings     []BookingView // текущая выборка, отсортированная
	Stats        Stats
	ErrorMessage string
	EmptyMessage string // сообщение для пустой выборки
}

// Пользовательские сообщения (дословно совпадают со страницей bookings)
const (
	msgLoadFailed   = "Failed to load bookings. Please try again."
	msgCancelFailed = "Failed to cancel booking"

	msgEmptyUpcoming  = "You don't have any upcoming meetings."
	msgEmptyPast      = "You don't have any past meetings."
	msgEmptyCancelled = "You don't have any cancelled meetings."
	msgEmptyAll       = "You don't have any bookings yet."
)

func emptyMessage(filter Filter) string {
	switch filter {
	case FilterUpcoming:
		return msgEmptyUpcoming
	case FilterPast:
		return msgEmptyPast
	case FilterCancelled:
		return msgEmptyCancelled
	default:
		return msgEmptyAll
	}
}
