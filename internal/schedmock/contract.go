package schedmock

import "time"

// Logger интерфейс логгера
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Metrics интерфейс для сбора метрик входящих HTTP-запросов
type Metrics interface {
	ObserveHTTP(method, route string, statusCode int, duration time.Duration)
}
