package schedservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/session"
)

// BookingClient клиент мутаций бронирований: публичное создание и
// owner-операции (список, отмена) с авторизацией через сессию
type BookingClient struct {
	caller
	sess *session.Session
}

// NewBookingClient создает новый экземпляр клиента бронирований.
// Для гостевого потока допустима session.Anonymous().
func NewBookingClient(baseURL string, timeout time.Duration, sess *session.Session, log Logger, m Metrics) *BookingClient {
	return &BookingClient{
		caller: newCaller(baseURL, timeout, log, m),
		sess:   sess,
	}
}

// CreateBooking создает бронирование от имени гостя.
// Non-2xx с телом {error: string} нормализуется в RejectionError: дословное
// сообщение сервиса должно дойти до гостя без изменений.
func (c *BookingClient) CreateBooking(ctx context.Context, username, slug string, req CreateBookingRequest) (*domain.BookingConfirmation, error) {
	reqURL := fmt.Sprintf("%s/public/%s/%s/book", c.baseURL, url.PathEscape(username), url.PathEscape(slug))

	status, body, err := c.doJSON(ctx, "create_booking", http.MethodPost, reqURL, req, "")
	if err != nil {
		return nil, err
	}

	if status < 200 || status >= 300 {
		if status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		c.log.Warn("create_booking: rejected with status %d for %s/%s", status, username, slug)
		return nil, &RejectionError{StatusCode: status, Message: decodeError(body)}
	}

	var dto bookingConfirmationDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode confirmation: %v", ErrInvalidResponse, err)
	}

	confirmation, err := dto.toDomain()
	if err != nil {
		return nil, err
	}

	c.log.Info("create_booking: booking created id=%s for %s/%s", confirmation.BookingID, username, slug)
	return confirmation, nil
}

// ListBookings возвращает все бронирования владельца сессии
func (c *BookingClient) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	if !c.sess.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	reqURL := fmt.Sprintf("%s/bookings", c.baseURL)

	status, body, err := c.doJSON(ctx, "list_bookings", http.MethodGet, reqURL, nil, c.sess.Token())
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		c.log.Warn("list_bookings: unexpected status %d", status)
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, status)
	}

	var dtos []bookingDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode bookings: %v", ErrInvalidResponse, err)
	}

	bookings := make([]*domain.Booking, 0, len(dtos))
	for i := range dtos {
		booking, err := dtos[i].toDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// CancelBooking отменяет бронирование владельца по идентификатору.
// Отмена - смена статуса на стороне сервиса, не удаление записи.
func (c *BookingClient) CancelBooking(ctx context.Context, bookingID string) error {
	if !c.sess.IsAuthenticated() {
		return ErrUnauthorized
	}

	reqURL := fmt.Sprintf("%s/bookings/%s", c.baseURL, url.PathEscape(bookingID))

	status, body, err := c.doJSON(ctx, "cancel_booking", http.MethodDelete, reqURL, nil, c.sess.Token())
	if err != nil {
		return err
	}

	switch {
	case status >= 200 && status < 300:
		c.log.Info("cancel_booking: booking cancelled id=%s", bookingID)
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		c.log.Warn("cancel_booking: rejected with status %d for id=%s", status, bookingID)
		return &RejectionError{StatusCode: status, Message: decodeError(body)}
	}
}
