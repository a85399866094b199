package bookinglist

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
)

type fakeClient struct {
	list   func(ctx context.Context) ([]*domain.Booking, error)
	cancel func(ctx context.Context, bookingID string) error

	cancelCalls atomic.Int64
}

func (f *fakeClient) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return f.list(ctx)
}

func (f *fakeClient) CancelBooking(ctx context.Context, bookingID string) error {
	f.cancelCalls.Add(1)
	if f.cancel == nil {
		return nil
	}
	return f.cancel(ctx, bookingID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func booking(id string, start time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		EventTypeName:   "30 Minute Meeting",
		EventTypeSlug:   "demo-30",
		StartTime:       start,
		EndTime:         start.Add(30 * time.Minute),
		DurationMinutes: 30,
		GuestName:       "Jamie Guest",
		GuestEmail:      "jamie@example.com",
		Location:        "Google Meet",
		Status:          status,
		CreatedAt:       testNow.AddDate(0, 0, -10),
	}
}

// Три бронирования: будущее, прошедшее и отменённое
func fixture() []*domain.Booking {
	return []*domain.Booking{
		booking("b1", testNow.AddDate(0, 0, 2), domain.StatusConfirmed),
		booking("b2", testNow.AddDate(0, 0, -2), domain.StatusConfirmed),
		booking("b3", testNow.AddDate(0, 0, 5), domain.StatusCancelled),
	}
}

func newTestController(t *testing.T, client *fakeClient) (*Controller, *notifications.Recorder) {
	t.Helper()
	recorder := &notifications.Recorder{}
	c := NewController(client, recorder, nopLogger{}).
		WithTimeProvider(&fixedClock{t: testNow})
	return c, recorder
}

func loadedController(t *testing.T, client *fakeClient) (*Controller, *notifications.Recorder) {
	t.Helper()
	c, recorder := newTestController(t, client)
	require.NoError(t, c.Load(context.Background()))
	return c, recorder
}

func TestLoad_Success(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return fixture(), nil
	}}
	c, _ := newTestController(t, client)

	require.NoError(t, c.Load(context.Background()))

	snap := c.Snapshot()
	assert.True(t, snap.Loaded)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.ErrorMessage)
	assert.Equal(t, Stats{Upcoming: 1, TotalConfirmed: 2, Cancelled: 1}, snap.Stats)
}

func TestLoad_Failure(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return nil, fmt.Errorf("%w: connection refused", schedservice.ErrNetwork)
	}}
	c, recorder := newTestController(t, client)

	require.Error(t, c.Load(context.Background()))

	snap := c.Snapshot()
	assert.False(t, snap.Loaded)
	assert.Equal(t, "Failed to load bookings. Please try again.", snap.ErrorMessage)

	last, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notifications.KindError, last.Kind)
}

func TestFilters(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return fixture(), nil
	}}
	c, _ := loadedController(t, client)

	cases := []struct {
		filter Filter
		ids    []string
	}{
		{FilterUpcoming, []string{"b1"}},
		{FilterPast, []string{"b2"}},
		{FilterCancelled, []string{"b3"}},
		{FilterAll, []string{"b2", "b1", "b3"}}, // по возрастанию start
	}

	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			views := c.Bookings(tc.filter)
			ids := make([]string, 0, len(views))
			for _, v := range views {
				ids = append(ids, v.Booking.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestFilters_PastSortedNewestFirst(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return []*domain.Booking{
			booking("old", testNow.AddDate(0, 0, -10), domain.StatusConfirmed),
			booking("recent", testNow.AddDate(0, 0, -1), domain.StatusConfirmed),
			booking("older", testNow.AddDate(0, 0, -20), domain.StatusConfirmed),
		}, nil
	}}
	c, _ := loadedController(t, client)

	views := c.Bookings(FilterPast)
	require.Len(t, views, 3)
	assert.Equal(t, "recent", views[0].Booking.ID)
	assert.Equal(t, "old", views[1].Booking.ID)
	assert.Equal(t, "older", views[2].Booking.ID)
}

func TestSetFilter_EmptySelectionMessage(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return []*domain.Booking{
			booking("b2", testNow.AddDate(0, 0, -2), domain.StatusConfirmed),
		}, nil
	}}
	c, _ := loadedController(t, client)

	c.SetFilter(FilterUpcoming)
	snap := c.Snapshot()
	assert.Empty(t, snap.Bookings)
	assert.Equal(t, "You don't have any upcoming meetings.", snap.EmptyMessage)

	c.SetFilter(FilterCancelled)
	assert.Equal(t, "You don't have any cancelled meetings.", c.Snapshot().EmptyMessage)

	c.SetFilter(FilterPast)
	snap = c.Snapshot()
	assert.Len(t, snap.Bookings, 1)
	assert.Empty(t, snap.EmptyMessage)
}

func TestRequestCancel_Guards(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return fixture(), nil
	}}

	t.Run("before load", func(t *testing.T) {
		c, _ := newTestController(t, client)
		assert.ErrorIs(t, c.RequestCancel("b1"), ErrNotLoaded)
	})

	c, _ := loadedController(t, client)

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, c.RequestCancel("missing"), ErrBookingNotFound)
	})
	t.Run("past booking", func(t *testing.T) {
		assert.ErrorIs(t, c.RequestCancel("b2"), ErrCannotCancel)
	})
	t.Run("cancelled booking", func(t *testing.T) {
		assert.ErrorIs(t, c.RequestCancel("b3"), ErrCannotCancel)
	})

	// Отказы не трогают сеть и не меняют состояние
	assert.Equal(t, int64(0), client.cancelCalls.Load())
	for _, view := range c.Bookings(FilterAll) {
		assert.Equal(t, CancelStateNone, view.CancelState)
	}
}

func TestCancelFlow_Success(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return fixture(), nil
	}}
	c, recorder := loadedController(t, client)

	require.NoError(t, c.RequestCancel("b1"))

	views := c.Bookings(FilterUpcoming)
	require.Len(t, views, 1)
	assert.Equal(t, CancelStatePending, views[0].CancelState)

	require.NoError(t, c.ConfirmCancel(context.Background(), "b1"))
	assert.Equal(t, int64(1), client.cancelCalls.Load())

	// Оптимистичное обновление: бронирование ушло из upcoming в cancelled
	assert.Empty(t, c.Bookings(FilterUpcoming))
	cancelled := c.Bookings(FilterCancelled)
	require.Len(t, cancelled, 2)
	assert.Equal(t, Stats{Upcoming: 0, TotalConfirmed: 1, Cancelled: 2}, c.Stats())

	last, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notifications.KindSuccess, last.Kind)
	assert.Equal(t, "Booking cancelled", last.Message)
}

func TestCancelFlow_DismissKeepsBooking(t *testing.T) {
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		return fixture(), nil
	}}
	c, _ := loadedController(t, client)

	require.NoError(t, c.RequestCancel("b1"))
	c.DismissCancel("b1")

	views := c.Bookings(FilterUpcoming)
	require.Len(t, views, 1)
	assert.Equal(t, CancelStateNone, views[0].CancelState)
	assert.ErrorIs(t, c.ConfirmCancel(context.Background(), "b1"), ErrCancelNotRequested)
	assert.Equal(t, int64(0), client.cancelCalls.Load())
}

func TestCancelFlow_FailureRevertsWithReason(t *testing.T) {
	client := &fakeClient{
		list: func(ctx context.Context) ([]*domain.Booking, error) {
			return fixture(), nil
		},
		cancel: func(ctx context.Context, bookingID string) error {
			return &schedservice.RejectionError{StatusCode: 400, Message: "Booking is already cancelled"}
		},
	}
	c, _ := loadedController(t, client)

	require.NoError(t, c.RequestCancel("b1"))
	require.Error(t, c.ConfirmCancel(context.Background(), "b1"))

	// Бронирование осталось confirmed, причина отказа видна
	views := c.Bookings(FilterUpcoming)
	require.Len(t, views, 1)
	assert.Equal(t, CancelStateFailed, views[0].CancelState)
	assert.Equal(t, "Booking is already cancelled", views[0].CancelReason)
	assert.Equal(t, domain.StatusConfirmed, views[0].Booking.Status)
}

func TestConfirmCancel_InFlightIsIdempotent(t *testing.T) {
	gate := make(chan struct{})
	client := &fakeClient{
		list: func(ctx context.Context) ([]*domain.Booking, error) {
			return fixture(), nil
		},
		cancel: func(ctx context.Context, bookingID string) error {
			<-gate
			return nil
		},
	}
	c, _ := loadedController(t, client)

	require.NoError(t, c.RequestCancel("b1"))

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.ConfirmCancel(context.Background(), "b1")
	}()

	require.Eventually(t, func() bool {
		views := c.Bookings(FilterUpcoming)
		return len(views) == 1 && views[0].CancelState == CancelStateCancelling
	}, time.Second, time.Millisecond)

	// Повторное подтверждение во время полёта - no-op без второго вызова
	require.NoError(t, c.ConfirmCancel(context.Background(), "b1"))
	close(gate)

	require.NoError(t, <-firstDone)
	assert.Equal(t, int64(1), client.cancelCalls.Load())
}

func TestLoad_NewerLoadWins(t *testing.T) {
	gate := make(chan struct{})
	var generation atomic.Int64
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		if generation.Add(1) == 1 {
			<-gate // первая загрузка висит, пока не завершится вторая
			return []*domain.Booking{
				booking("stale", testNow.AddDate(0, 0, 1), domain.StatusConfirmed),
			}, nil
		}
		return fixture(), nil
	}}
	c, _ := newTestController(t, client)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.Load(context.Background())
	}()

	require.Eventually(t, func() bool {
		return c.Snapshot().Loading
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Load(context.Background()))
	close(gate)

	// Медленный ранний ответ не перетирает более свежую коллекцию
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.True(t, snap.Loaded)
	ids := make([]string, 0, len(c.Bookings(FilterAll)))
	for _, v := range c.Bookings(FilterAll) {
		ids = append(ids, v.Booking.ID)
	}
	assert.Equal(t, []string{"b2", "b1", "b3"}, ids)
}

func TestRefresh_ReplacesCollection(t *testing.T) {
	var generation atomic.Int64
	client := &fakeClient{list: func(ctx context.Context) ([]*domain.Booking, error) {
		if generation.Load() == 0 {
			return fixture(), nil
		}
		// Сервер узнал об отмене b1 и о новом бронировании b4
		return []*domain.Booking{
			booking("b1", testNow.AddDate(0, 0, 2), domain.StatusCancelled),
			booking("b4", testNow.AddDate(0, 0, 9), domain.StatusConfirmed),
		}, nil
	}}
	c, _ := loadedController(t, client)

	generation.Add(1)
	require.NoError(t, c.Refresh(context.Background()))

	views := c.Bookings(FilterUpcoming)
	require.Len(t, views, 1)
	assert.Equal(t, "b4", views[0].Booking.ID)
	assert.Equal(t, Stats{Upcoming: 1, TotalConfirmed: 1, Cancelled: 1}, c.Stats())
}
