package schedservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/session"
)

func ownerSession() *session.Session {
	return session.New("owner-token", &session.User{ID: "u1", Username: "demo"})
}

func TestCreateBooking_Success(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/public/demo/demo-30/book", r.URL.Path)
		// Гостевое создание не требует авторизации
		assert.Empty(t, r.Header.Get("Authorization"))

		var req CreateBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Jamie Guest", req.GuestName)
		assert.True(t, req.StartTime.Equal(start))
		assert.Nil(t, req.GuestPhone)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"bookingId": "b1",
			"guestName": "Jamie Guest",
			"guestEmail": "jamie@example.com",
			"startTime": "2026-03-15T09:00:00Z",
			"endTime": "2026-03-15T09:30:00Z",
			"eventTypeName": "30 Minute Meeting",
			"location": "Google Meet",
			"durationMinutes": 30,
			"status": "confirmed",
			"message": "Booking confirmed successfully"
		}`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, session.Anonymous(), nopLogger{}, nil)
	confirmation, err := client.CreateBooking(context.Background(), "demo", "demo-30", CreateBookingRequest{
		GuestName:  "Jamie Guest",
		GuestEmail: "jamie@example.com",
		StartTime:  start,
	})
	require.NoError(t, err)

	assert.Equal(t, "b1", confirmation.BookingID)
	assert.Equal(t, domain.StatusConfirmed, confirmation.Status)
	assert.True(t, confirmation.StartTime.Equal(start))
	assert.Equal(t, "Booking confirmed successfully", confirmation.Message)
}

func TestCreateBooking_RejectionCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "This time slot is no longer available"}`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, session.Anonymous(), nopLogger{}, nil)
	_, err := client.CreateBooking(context.Background(), "demo", "demo-30", CreateBookingRequest{
		GuestName:  "Jamie Guest",
		GuestEmail: "jamie@example.com",
		StartTime:  time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationRejected)
	assert.Equal(t, "This time slot is no longer available", ServerMessage(err))

	var rej *RejectionError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, http.StatusConflict, rej.StatusCode)
}

func TestCreateBooking_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Event type not found"}`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, session.Anonymous(), nopLogger{}, nil)
	_, err := client.CreateBooking(context.Background(), "demo", "missing", CreateBookingRequest{
		GuestName:  "Jamie Guest",
		GuestEmail: "jamie@example.com",
		StartTime:  time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBookings_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "Bearer owner-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[
			{
				"id": "b1",
				"eventTypeName": "30 Minute Meeting",
				"eventTypeSlug": "demo-30",
				"startTime": "2026-03-15T09:00:00Z",
				"endTime": "2026-03-15T09:30:00Z",
				"durationMinutes": 30,
				"guestName": "Jamie Guest",
				"guestEmail": "jamie@example.com",
				"location": "Google Meet",
				"status": "confirmed",
				"createdAt": "2026-03-01T10:00:00Z"
			}
		]`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, ownerSession(), nopLogger{}, nil)
	bookings, err := client.ListBookings(context.Background())
	require.NoError(t, err)

	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
	assert.Equal(t, domain.StatusConfirmed, bookings[0].Status)
	assert.True(t, bookings[0].StartTime.Equal(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)))
}

func TestListBookings_RequiresSession(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, session.Anonymous(), nopLogger{}, nil)
	_, err := client.ListBookings(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, calls)
}

func TestListBookings_ServerRejectsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Unauthorized"}`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, ownerSession(), nopLogger{}, nil)
	_, err := client.ListBookings(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancelBooking_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/bookings/b1", r.URL.Path)
		assert.Equal(t, "Bearer owner-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status": "cancelled"}`))
	}))
	defer server.Close()

	client := NewBookingClient(server.URL, 5*time.Second, ownerSession(), nopLogger{}, nil)
	assert.NoError(t, client.CancelBooking(context.Background(), "b1"))
}

func TestCancelBooking_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"error": "Booking not found"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error": "Unauthorized"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
		{
			name:   "rejected with reason",
			status: http.StatusBadRequest,
			body:   `{"error": "Booking is already cancelled"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrValidationRejected)
				assert.Equal(t, "Booking is already cancelled", ServerMessage(err))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewBookingClient(server.URL, 5*time.Second, ownerSession(), nopLogger{}, nil)
			tc.check(t, client.CancelBooking(context.Background(), "b1"))
		})
	}
}
