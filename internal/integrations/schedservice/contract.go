package schedservice

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для сбора метрик исходящих запросов
// nil допустим - метрики тогда не собираются
type Metrics interface {
	ObserveOutbound(operation string, statusCode int, duration time.Duration)
}
