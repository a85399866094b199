package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
	"github.com/m04kA/SMC-SchedulingClient/internal/integrations/schedservice"
)

// AvailabilityClient интерфейс клиента доступности
type AvailabilityClient interface {
	GetDayAvailability(ctx context.Context, username, slug string, date time.Time) (*domain.DayAvailability, error)
}

// BookingClient интерфейс клиента создания бронирований
type BookingClient interface {
	CreateBooking(ctx context.Context, username, slug string, req schedservice.CreateBookingRequest) (*domain.BookingConfirmation, error)
}

// Notifier приёмник выходного потока уведомлений контроллера
// nil допустим - уведомления тогда не эмитятся
type Notifier interface {
	Notify(n notifications.Notification)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
