package wizard

import "errors"

var (
	// ErrDateOutOfRange возвращается для дат вне окна [завтра, сегодня+60д];
	// сетевой запрос при этом не выполняется
	ErrDateOutOfRange = errors.New("wizard: date outside booking window")

	// ErrNoAvailability возвращается при валидном запросе с пустым списком
	// слотов; wizard остаётся на выборе даты
	ErrNoAvailability = errors.New("wizard: no available slots for this date")

	// ErrInvalidState возвращается, когда операция недопустима в текущем
	// состоянии
	ErrInvalidState = errors.New("wizard: operation not allowed in current state")

	// ErrUnknownSlot возвращается при выборе слота не из последнего batch
	// для текущей даты (защита от устаревших слотов)
	ErrUnknownSlot = errors.New("wizard: slot does not belong to the current date")

	// ErrOperationInFlight возвращается, когда навигация заблокирована
	// незавершённым сетевым вызовом текущего шага
	ErrOperationInFlight = errors.New("wizard: operation already in flight")

	// ErrSuperseded возвращается, когда результат вызова был отброшен:
	// выбор пользователя изменился до прихода ответа
	ErrSuperseded = errors.New("wizard: result superseded by a newer selection")

	// ErrInvalidDraft возвращается при невалидных данных гостя до любого
	// сетевого вызова
	ErrInvalidDraft = errors.New("wizard: invalid booking draft")
)
