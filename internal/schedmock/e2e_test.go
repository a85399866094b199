package schedmock

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/bookinglist"
	"github.com/m04kA/SMC-SchedulingClient/internal/controller/wizard"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
	"github.com/m04kA/SMC-SchedulingClient/internal/session"
)

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

// Полный цикл через реальные клиенты против stub-сервиса: гость бронирует
// встречу через wizard, владелец видит её в списке и отменяет.
func TestGuestBooksAndOwnerCancels(t *testing.T) {
	store := NewStore(9, 17).WithClock(func() time.Time { return testNow })
	svc := NewService(store, nopLogger{}, 0, 0)
	server := httptest.NewServer(svc.Router(nil))
	defer server.Close()

	clock := &fixedClock{t: testNow}

	availabilityClient := schedservice.NewAvailabilityClient(server.URL, 5*time.Second, nopLogger{}, nil)
	guestClient := schedservice.NewBookingClient(server.URL, 5*time.Second, session.Anonymous(), nopLogger{}, nil)

	w := wizard.NewController("demo", "demo-30", availabilityClient, guestClient, nil, nopLogger{}).
		WithTimeProvider(clock)

	date := testNow.AddDate(0, 0, 5)
	require.NoError(t, w.SelectDate(context.Background(), date))

	snap := w.Snapshot()
	require.Equal(t, wizard.StateSelectingTime, snap.State)
	require.Len(t, snap.Availability.Slots, 16)

	chosen := snap.Availability.Slots[3]
	require.NoError(t, w.SelectSlot(chosen))
	require.NoError(t, w.SubmitDetails(context.Background(), wizard.Draft{
		GuestName:  "Jamie Guest",
		GuestEmail: "jamie@example.com",
		Notes:      "First meeting",
	}))

	snap = w.Snapshot()
	require.Equal(t, wizard.StateConfirmed, snap.State)
	require.NotNil(t, snap.Confirmation)
	bookingID := snap.Confirmation.BookingID
	assert.True(t, snap.Confirmation.StartTime.Equal(chosen.Start))

	// Повторный заход гостя на ту же дату: выбранный слот занят
	w2 := wizard.NewController("demo", "demo-30", availabilityClient, guestClient, nil, nopLogger{}).
		WithTimeProvider(clock)
	require.NoError(t, w2.SelectDate(context.Background(), date))
	for _, slot := range w2.Snapshot().Availability.Slots {
		assert.False(t, slot.Equal(chosen))
	}

	// Владелец видит бронирование и отменяет его
	ownerSess := session.New(DefaultToken, &session.User{ID: "u1", Username: "demo"})
	ownerClient := schedservice.NewBookingClient(server.URL, 5*time.Second, ownerSess, nopLogger{}, nil)

	list := bookinglist.NewController(ownerClient, nil, nopLogger{}).
		WithTimeProvider(clock)
	require.NoError(t, list.Load(context.Background()))

	upcoming := list.Bookings(bookinglist.FilterUpcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, bookingID, upcoming[0].Booking.ID)
	assert.Equal(t, "Jamie Guest", upcoming[0].Booking.GuestName)

	require.NoError(t, list.RequestCancel(bookingID))
	require.NoError(t, list.ConfirmCancel(context.Background(), bookingID))

	assert.Empty(t, list.Bookings(bookinglist.FilterUpcoming))
	cancelled := list.Bookings(bookinglist.FilterCancelled)
	require.Len(t, cancelled, 1)
	assert.Equal(t, bookingID, cancelled[0].Booking.ID)

	// После Refresh сервер подтверждает оптимистичное состояние
	require.NoError(t, list.Refresh(context.Background()))
	assert.Empty(t, list.Bookings(bookinglist.FilterUpcoming))
	assert.Len(t, list.Bookings(bookinglist.FilterCancelled), 1)

	// Отменённый слот снова в сетке: запись освободила время
	require.NoError(t, w2.SelectDate(context.Background(), date))
	found := false
	for _, slot := range w2.Snapshot().Availability.Slots {
		if slot.Equal(chosen) {
			found = true
		}
	}
	assert.True(t, found)
}
