package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
)

// Controller конечный автомат гостевого бронирования:
// SelectingDate → SelectingTime → EnteringDetails → Confirmed.
//
// Все мутации сериализуются мьютексом; сетевые вызовы выполняются вне
// блокировки, а их результаты применяются только если выбор пользователя
// не изменился за время полёта (last-write-wins по дате, не по порядку
// прихода ответов).
type Controller struct {
	username string
	slug     string

	availability AvailabilityClient
	bookings     BookingClient
	timeProvider TimeProvider
	notifier     Notifier
	logger       Logger

	mu              sync.Mutex
	state           State
	selectedDate    time.Time
	hasDate         bool
	avail           *domain.DayAvailability
	slotBatchDate   string // дата (YYYY-MM-DD), для которой получен текущий batch слотов
	selectedSlot    *domain.AvailableSlot
	draft           *Draft
	confirmation    *domain.BookingConfirmation
	errMsg          string
	fetchesInFlight int
	submitInFlight  bool
	resetSeq        uint64 // растёт на каждом Reset; маркирует устаревшие in-flight вызовы

	subscribers []func(Snapshot)
}

// NewController создает wizard для одной booking-страницы (username, slug).
// notifier может быть nil.
func NewController(
	username string,
	slug string,
	availability AvailabilityClient,
	bookings BookingClient,
	notifier Notifier,
	logger Logger,
) *Controller {
	return &Controller{
		username:     username,
		slug:         slug,
		availability: availability,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		notifier:     notifier,
		logger:       logger,
		state:        StateSelectingDate,
	}
}

// Subscribe регистрирует подписчика на изменения состояния.
// Подписчик вызывается с готовым снимком после каждого изменения.
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Snapshot возвращает текущий снимок состояния
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectDate выбирает дату и запрашивает слоты на неё.
//
// Даты вне окна [завтра, сегодня+60д] отклоняются до сетевого вызова.
// Пока запрос в полёте, повторный выбор даты разрешён: более поздний выбор
// вытесняет текущий, а ответ для уже не выбранной даты отбрасывается.
func (c *Controller) SelectDate(ctx context.Context, date time.Time) error {
	c.mu.Lock()

	if c.submitInFlight {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	if c.state != StateSelectingDate && c.state != StateSelectingTime {
		c.mu.Unlock()
		return ErrInvalidState
	}

	now := c.timeProvider.Now()
	if !dateWithinWindow(date, now) {
		c.mu.Unlock()
		c.logger.Warn("SelectDate: date %s outside booking window", date.Format(domain.DateFormat))
		return ErrDateOutOfRange
	}

	dateKey := date.Format(domain.DateFormat)
	seq := c.resetSeq
	c.selectedDate = date
	c.hasDate = true
	c.errMsg = ""
	c.fetchesInFlight++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	c.logger.Info("SelectDate: fetching availability for %s/%s date=%s", c.username, c.slug, dateKey)

	result, fetchErr := c.availability.GetDayAvailability(ctx, c.username, c.slug, date)

	c.mu.Lock()
	c.fetchesInFlight--

	// Ответ применяется только если выбор не изменился за время полёта
	if seq != c.resetSeq || !c.hasDate || c.selectedDate.Format(domain.DateFormat) != dateKey {
		c.mu.Unlock()
		c.logger.Info("SelectDate: discarding superseded result for date=%s", dateKey)
		return ErrSuperseded
	}

	if fetchErr != nil {
		c.state = StateSelectingDate
		c.avail = nil
		c.slotBatchDate = ""
		c.selectedSlot = nil
		c.errMsg = availabilityErrorMessage(fetchErr)
		snap = c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("SelectDate: availability fetch failed for date=%s: %v", dateKey, fetchErr)
		c.emit(snap, notifications.Notification{Kind: notifications.KindError, Message: availabilityErrorMessage(fetchErr)})
		return fetchErr
	}

	if !result.HasSlots() {
		// Событийный контекст сохраняем для заголовка, но дальше не идём
		c.state = StateSelectingDate
		c.avail = result
		c.slotBatchDate = ""
		c.errMsg = msgNoSlots
		snap = c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Info("SelectDate: no slots for date=%s", dateKey)
		c.emit(snap, notifications.Notification{Kind: notifications.KindWarning, Message: msgNoSlots})
		return ErrNoAvailability
	}

	c.state = StateSelectingTime
	c.avail = result
	c.slotBatchDate = dateKey
	c.selectedSlot = nil
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("SelectDate: %d slots available for date=%s", len(result.Slots), dateKey)
	c.emit(snap)
	return nil
}

// SelectSlot выбирает слот из последнего batch для текущей даты.
// Слоты, оставшиеся от предыдущей даты, отклоняются.
func (c *Controller) SelectSlot(slot domain.AvailableSlot) error {
	c.mu.Lock()

	if c.submitInFlight {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	if c.state != StateSelectingTime {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if !c.slotInCurrentBatchLocked(slot) {
		c.mu.Unlock()
		c.logger.Warn("SelectSlot: rejected stale slot start=%s", slot.Start.Format(time.RFC3339))
		return ErrUnknownSlot
	}

	chosen := slot
	c.selectedSlot = &chosen
	c.state = StateEnteringDetails
	c.errMsg = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("SelectSlot: slot chosen start=%s", slot.Start.Format(time.RFC3339))
	c.emit(snap)
	return nil
}

// Back возвращает на предыдущий шаг:
// SelectingTime → SelectingDate (слоты отбрасываются),
// EnteringDetails → SelectingTime (draft отбрасывается, слоты остаются).
func (c *Controller) Back() error {
	c.mu.Lock()

	if c.submitInFlight {
		c.mu.Unlock()
		return ErrOperationInFlight
	}

	switch c.state {
	case StateSelectingTime:
		c.state = StateSelectingDate
		c.avail = nil
		c.slotBatchDate = ""
		c.selectedSlot = nil
		c.errMsg = ""
	case StateEnteringDetails:
		c.state = StateSelectingTime
		c.selectedSlot = nil
		c.draft = nil
		c.errMsg = ""
	default:
		c.mu.Unlock()
		return ErrInvalidState
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return nil
}

// SubmitDetails валидирует данные гостя и создает бронирование.
// При отказе сервиса draft сохраняется, а его сообщение показывается
// дословно. Пока submit в полёте, вся навигация кроме Reset заблокирована.
func (c *Controller) SubmitDetails(ctx context.Context, draft Draft) error {
	c.mu.Lock()

	if c.state != StateEnteringDetails {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if c.submitInFlight {
		c.mu.Unlock()
		return ErrOperationInFlight
	}

	if err := validateDraft(draft); err != nil {
		c.errMsg = validationMessage(err)
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Warn("SubmitDetails: draft validation failed: %v", err)
		c.emit(snap)
		return err
	}

	slot := *c.selectedSlot
	held := draft
	c.draft = &held
	c.submitInFlight = true
	c.errMsg = ""
	seq := c.resetSeq
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	c.logger.Info("SubmitDetails: creating booking for %s/%s start=%s guest=%s",
		c.username, c.slug, slot.Start.Format(time.RFC3339), draft.GuestEmail)

	confirmation, submitErr := c.bookings.CreateBooking(ctx, c.username, c.slug, buildCreateRequest(draft, slot))

	c.mu.Lock()
	c.submitInFlight = false

	if seq != c.resetSeq {
		c.mu.Unlock()
		c.logger.Info("SubmitDetails: discarding superseded result (wizard was reset)")
		return ErrSuperseded
	}

	if submitErr != nil {
		msg := submitErrorMessage(submitErr)
		c.errMsg = msg
		snap = c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("SubmitDetails: booking failed: %v", submitErr)
		c.emit(snap, notifications.Notification{Kind: notifications.KindError, Message: msg})
		return submitErr
	}

	c.state = StateConfirmed
	c.confirmation = confirmation
	c.draft = nil
	c.errMsg = ""
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("SubmitDetails: booking confirmed id=%s", confirmation.BookingID)
	c.emit(snap, notifications.Notification{Kind: notifications.KindSuccess, Message: confirmation.Message})
	return nil
}

// Reset возвращает wizard в исходное состояние, отбрасывая всё производное
// состояние. Доступен всегда и идемпотентен; результаты in-flight вызовов
// после Reset отбрасываются.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.resetSeq++
	c.state = StateSelectingDate
	c.selectedDate = time.Time{}
	c.hasDate = false
	c.avail = nil
	c.slotBatchDate = ""
	c.selectedSlot = nil
	c.draft = nil
	c.confirmation = nil
	c.errMsg = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
}

// WithTimeProvider подменяет источник времени (для тестов)
func (c *Controller) WithTimeProvider(tp TimeProvider) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeProvider = tp
	return c
}

func (c *Controller) slotInCurrentBatchLocked(slot domain.AvailableSlot) bool {
	if c.avail == nil || !c.hasDate {
		return false
	}
	if c.slotBatchDate != c.selectedDate.Format(domain.DateFormat) {
		return false
	}
	for _, s := range c.avail.Slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        c.state,
		ErrorMessage: c.errMsg,
		Loading:      c.fetchesInFlight > 0 || c.submitInFlight,
	}
	if c.hasDate {
		d := c.selectedDate
		snap.SelectedDate = &d
	}
	if c.avail != nil {
		availCopy := *c.avail
		availCopy.Slots = make([]domain.AvailableSlot, len(c.avail.Slots))
		copy(availCopy.Slots, c.avail.Slots)
		snap.Availability = &availCopy
	}
	if c.selectedSlot != nil {
		slotCopy := *c.selectedSlot
		snap.SelectedSlot = &slotCopy
	}
	if c.draft != nil {
		draftCopy := *c.draft
		snap.Draft = &draftCopy
	}
	if c.confirmation != nil {
		confCopy := *c.confirmation
		snap.Confirmation = &confCopy
	}
	return snap
}

// emit доставляет снимок подписчикам и уведомления в notifier.
// Вызывается строго вне блокировки.
func (c *Controller) emit(snap Snapshot, notes ...notifications.Notification) {
	c.mu.Lock()
	subs := make([]func(Snapshot), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	if c.notifier != nil {
		for _, n := range notes {
			c.notifier.Notify(n)
		}
	}
}

// dateWithinWindow проверяет окно бронирования на уровне календарных дней
// во временной зоне наблюдателя. Границы считаются через AddDate, а не через
// деление часов: сутки с переходом на летнее время длиннее или короче 24ч.
func dateWithinWindow(date, now time.Time) bool {
	local := date.In(now.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, now.Location())
	minDay := nowDay.AddDate(0, 0, domain.MinAdvanceDays)
	maxDay := nowDay.AddDate(0, 0, domain.MaxAdvanceDays)
	return !dateDay.Before(minDay) && !dateDay.After(maxDay)
}

func availabilityErrorMessage(err error) string {
	switch {
	case errors.Is(err, schedservice.ErrNotFound):
		return msgEventTypeNotFound
	case errors.Is(err, schedservice.ErrNetwork):
		return msgNetworkError
	default:
		return msgLoadFailed
	}
}

func submitErrorMessage(err error) string {
	if msg := schedservice.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, schedservice.ErrNetwork) {
		return msgNetworkError
	}
	return msgBookingFailed
}

func validationMessage(err error) string {
	msg := err.Error()
	if cut, ok := strings.CutPrefix(msg, ErrInvalidDraft.Error()+": "); ok {
		return cut
	}
	return msg
}

func buildCreateRequest(draft Draft, slot domain.AvailableSlot) schedservice.CreateBookingRequest {
	req := schedservice.CreateBookingRequest{
		GuestName:  strings.TrimSpace(draft.GuestName),
		GuestEmail: strings.TrimSpace(draft.GuestEmail),
		StartTime:  slot.Start,
	}
	if phone := strings.TrimSpace(draft.GuestPhone); phone != "" {
		req.GuestPhone = &phone
	}
	if notes := strings.TrimSpace(draft.Notes); notes != "" {
		req.Notes = &notes
	}
	return req
}
