package bookinglist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingClient/internal/controller/notifications"
	"github.com/m04kA/SMC-SchedulingClient/internal/domain"
)

// BookingClient интерфейс клиента owner-операций с бронированиями
type BookingClient interface {
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
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
