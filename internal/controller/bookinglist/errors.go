package bookinglist

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено в
	// коллекции владельца
	ErrBookingNotFound = errors.New("bookinglist: booking not found")

	// ErrCannotCancel возвращается для прошедших или уже отменённых
	// бронирований: состояние не меняется, сетевой вызов не выполняется
	ErrCannotCancel = errors.New("bookinglist: booking cannot be cancelled")

	// ErrCancelNotRequested возвращается при подтверждении отмены без
	// предшествующего RequestCancel
	ErrCancelNotRequested = errors.New("bookinglist: cancellation was not requested")

	// ErrNotLoaded возвращается, когда операция требует загруженную
	// коллекцию бронирований
	ErrNotLoaded = errors.New("bookinglist: bookings are not loaded")

	// ErrSuperseded возвращается, когда результат загрузки был отброшен:
	// более поздний Load завершился раньше
	ErrSuperseded = errors.New("bookinglist: load result superseded by a newer load")
)
