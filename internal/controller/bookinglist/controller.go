package bookinglist

import (
	"context"
	"errors"
	"sync"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
)

// Controller держит авторитетную in-memory копию бронирований владельца и
// отдает отфильтрованные выборки, не мутируя источник.
//
// Отмена - автомат per-booking:
// Confirmed+Future → PendingCancel → Cancelling → Cancelled | CancelFailed.
// Источник истины - ответ сервера; локальная смена статуса после успешной
// отмены - оптимистичный кэш, сходящийся с Refresh.
type Controller struct {
	client       BookingClient
	timeProvider TimeProvider
	notifier     Notifier
	logger       Logger

	mu       sync.Mutex
	bookings []*domain.Booking
	cancels  map[string]*cancelProgress // по ID бронирования
	loading  bool
	loaded   bool
	loadSeq  uint64 // растёт на каждом Load; маркирует устаревшие in-flight загрузки
	filter   Filter
	errMsg   string

	subscribers []func(Snapshot)
}

type cancelProgress struct {
	state  CancelState
	reason string
}

// NewController создает контроллер списка бронирований.
// notifier может быть nil.
func NewController(client BookingClient, notifier Notifier, logger Logger) *Controller {
	return &Controller{
		client:       client,
		timeProvider: &RealTimeProvider{},
		notifier:     notifier,
		logger:       logger,
		cancels:      make(map[string]*cancelProgress),
		filter:       FilterUpcoming,
	}
}

// Subscribe регистрирует подписчика на изменения состояния
func (c *Controller) Subscribe(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Snapshot возвращает текущий снимок: выборка по активному фильтру,
// счётчики и состояние отмен
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load загружает коллекцию бронирований владельца с сервиса.
// Повторный вызов (Refresh) замещает коллекцию целиком: сервер авторитетен,
// оптимистичные локальные правки живут только до следующей загрузки.
// При перекрывающихся загрузках применяется только самая поздняя: ответ
// более раннего вызова, пришедший после, отбрасывается.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.loadSeq++
	seq := c.loadSeq
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	c.logger.Info("Load: fetching bookings")

	bookings, err := c.client.ListBookings(ctx)

	c.mu.Lock()

	// Ответ применяется только если за время полёта не стартовала новая загрузка
	if seq != c.loadSeq {
		c.mu.Unlock()
		c.logger.Info("Load: discarding superseded result")
		return ErrSuperseded
	}

	c.loading = false

	if err != nil {
		c.errMsg = msgLoadFailed
		snap = c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("Load: failed to fetch bookings: %v", err)
		c.emit(snap, notifications.Notification{Kind: notifications.KindError, Message: msgLoadFailed})
		return err
	}

	c.bookings = bookings
	c.loaded = true
	// Прогресс отмен для исчезнувших ID больше не нужен
	for id := range c.cancels {
		if c.findLocked(id) == nil {
			delete(c.cancels, id)
		}
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("Load: fetched %d bookings", len(bookings))
	c.emit(snap)
	return nil
}

// Refresh повторно загружает коллекцию с сервиса
func (c *Controller) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// SetFilter переключает активную выборку
func (c *Controller) SetFilter(filter Filter) {
	c.mu.Lock()
	c.filter = filter
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
}

// Bookings возвращает выборку по фильтру, вычисленную от текущего момента
func (c *Controller) Bookings(filter Filter) []BookingView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewsLocked(filter)
}

// Stats возвращает счётчики для карточек дашборда
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return computeStats(c.bookings, c.timeProvider.Now())
}

// RequestCancel переводит бронирование в PendingCancel (ожидание
// подтверждения пользователя). Только confirmed-бронирования с началом в
// будущем; для остальных - синхронный отказ без изменения состояния.
// Повторный запрос для того же ID - no-op.
func (c *Controller) RequestCancel(bookingID string) error {
	c.mu.Lock()

	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	booking := c.findLocked(bookingID)
	if booking == nil {
		c.mu.Unlock()
		return ErrBookingNotFound
	}

	if progress, ok := c.cancels[bookingID]; ok &&
		(progress.state == CancelStatePending || progress.state == CancelStateCancelling) {
		c.mu.Unlock()
		return nil
	}

	if !booking.CanBeCancelled(c.timeProvider.Now()) {
		c.mu.Unlock()
		c.logger.Warn("RequestCancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	c.cancels[bookingID] = &cancelProgress{state: CancelStatePending}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("RequestCancel: booking id=%s awaiting confirmation", bookingID)
	c.emit(snap)
	return nil
}

// DismissCancel выходит из PendingCancel без отмены
func (c *Controller) DismissCancel(bookingID string) {
	c.mu.Lock()
	if progress, ok := c.cancels[bookingID]; !ok || progress.state != CancelStatePending {
		c.mu.Unlock()
		return
	}
	delete(c.cancels, bookingID)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
}

// ConfirmCancel выполняет отмену подтверждённого пользователем бронирования.
//
// Одновременно допускается не более одной отмены на бронирование: повторный
// вызов, пока предыдущий в полёте, - идемпотентный no-op без дублирующего
// сетевого вызова. При неудаче бронирование возвращается в исходное
// состояние с видимой причиной; промежуточный статус наружу не попадает.
func (c *Controller) ConfirmCancel(ctx context.Context, bookingID string) error {
	c.mu.Lock()

	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	progress, ok := c.cancels[bookingID]
	if !ok {
		c.mu.Unlock()
		return ErrCancelNotRequested
	}
	if progress.state == CancelStateCancelling {
		c.mu.Unlock()
		c.logger.Info("ConfirmCancel: cancel already in flight for id=%s", bookingID)
		return nil
	}
	if progress.state != CancelStatePending {
		c.mu.Unlock()
		return ErrCancelNotRequested
	}

	booking := c.findLocked(bookingID)
	if booking == nil {
		delete(c.cancels, bookingID)
		c.mu.Unlock()
		return ErrBookingNotFound
	}

	// Состояние могло устареть, пока ждали подтверждения
	if !booking.CanBeCancelled(c.timeProvider.Now()) {
		delete(c.cancels, bookingID)
		c.mu.Unlock()
		return ErrCannotCancel
	}

	progress.state = CancelStateCancelling
	progress.reason = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	c.logger.Info("ConfirmCancel: cancelling booking id=%s", bookingID)

	cancelErr := c.client.CancelBooking(ctx, bookingID)

	c.mu.Lock()

	if cancelErr != nil {
		reason := cancelErrorMessage(cancelErr)
		c.cancels[bookingID] = &cancelProgress{state: CancelStateFailed, reason: reason}
		snap = c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("ConfirmCancel: failed to cancel booking id=%s: %v", bookingID, cancelErr)
		c.emit(snap, notifications.Notification{Kind: notifications.KindError, Message: reason})
		return cancelErr
	}

	// Функциональное обновление: новая коллекция с новым статусом, чтобы
	// выданные ранее выборки остались консистентными
	c.bookings = withStatus(c.bookings, bookingID, domain.StatusCancelled)
	delete(c.cancels, bookingID)
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("ConfirmCancel: booking cancelled id=%s", bookingID)
	c.emit(snap, notifications.Notification{Kind: notifications.KindSuccess, Message: "Booking cancelled"})
	return nil
}

// WithTimeProvider подменяет источник времени (для тестов)
func (c *Controller) WithTimeProvider(tp TimeProvider) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeProvider = tp
	return c
}

func (c *Controller) findLocked(bookingID string) *domain.Booking {
	for _, b := range c.bookings {
		if b.ID == bookingID {
			return b
		}
	}
	return nil
}

func (c *Controller) viewsLocked(filter Filter) []BookingView {
	filtered := applyFilter(c.bookings, filter, c.timeProvider.Now())
	views := make([]BookingView, 0, len(filtered))
	for _, b := range filtered {
		view := BookingView{Booking: *b}
		if progress, ok := c.cancels[b.ID]; ok {
			view.CancelState = progress.state
			view.CancelReason = progress.reason
		}
		views = append(views, view)
	}
	return views
}

func (c *Controller) snapshotLocked() Snapshot {
	views := c.viewsLocked(c.filter)
	snap := Snapshot{
		Loading:      c.loading,
		Loaded:       c.loaded,
		Filter:       c.filter,
		Bookings:     views,
		Stats:        computeStats(c.bookings, c.timeProvider.Now()),
		ErrorMessage: c.errMsg,
	}
	if c.loaded && len(views) == 0 {
		snap.EmptyMessage = emptyMessage(c.filter)
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

// withStatus возвращает новую коллекцию, где бронирование bookingID имеет
// статус status; остальные элементы разделяются со старой коллекцией
func withStatus(bookings []*domain.Booking, bookingID string, status domain.BookingStatus) []*domain.Booking {
	next := make([]*domain.Booking, len(bookings))
	for i, b := range bookings {
		if b.ID == bookingID {
			updated := *b
			updated.Status = status
			next[i] = &updated
		} else {
			next[i] = b
		}
	}
	return next
}

func cancelErrorMessage(err error) string {
	if msg := schedservice.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, schedservice.ErrNetwork) {
		return "Network error. Please try again."
	}
	return msgCancelFailed
}
