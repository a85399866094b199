package schedservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// AvailabilityClient клиент публичных (гостевых) запросов к scheduling service:
// профиль хоста и доступные слоты на дату
type AvailabilityClient struct {
	caller
}

// NewAvailabilityClient создает новый экземпляр клиента доступности
// m может быть nil - метрики тогда не собираются
func NewAvailabilityClient(baseURL string, timeout time.Duration, log Logger, m Metrics) *AvailabilityClient {
	return &AvailabilityClient{
		caller: newCaller(baseURL, timeout, log, m),
	}
}

// GetDayAvailability запрашивает доступные слоты для (event type, дата).
// Слоты возвращаются в порядке сервера; пустой список - валидный ответ
// (свободных окон нет), не ошибка.
func (c *AvailabilityClient) GetDayAvailability(ctx context.Context, username, slug string, date time.Time) (*domain.DayAvailability, error) {
	reqURL := fmt.Sprintf("%s/public/%s/%s/availability?date=%s",
		c.baseURL, url.PathEscape(username), url.PathEscape(slug), date.Format(domain.DateFormat))

	status, body, err := c.doJSON(ctx, "get_day_availability", http.MethodGet, reqURL, nil, "")
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.log.Warn("get_day_availability: unexpected status %d for %s/%s", status, username, slug)
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, status)
	}

	var dto dayAvailabilityDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode availability: %v", ErrInvalidResponse, err)
	}

	return dto.toDomain()
}

// GetPublicProfile запрашивает публичную страницу хоста: имя и список
// активных event types
func (c *AvailabilityClient) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	reqURL := fmt.Sprintf("%s/public/%s", c.baseURL, url.PathEscape(username))

	status, body, err := c.doJSON(ctx, "get_public_profile", http.MethodGet, reqURL, nil, "")
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		c.log.Warn("get_public_profile: unexpected status %d for %s", status, username)
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, status)
	}

	var dto publicProfileDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("%w: failed to decode profile: %v", ErrInvalidResponse, err)
	}

	return dto.toDomain(), nil
}
