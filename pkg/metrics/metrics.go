package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics prometheus-коллекторы сервиса
// Покрывает две стороны: исходящие запросы к scheduling service (клиенты)
// и входящие HTTP-запросы (schedmock)
type Metrics struct {
	serviceName string

	outboundTotal    *prometheus.CounterVec
	outboundDuration *prometheus.HistogramVec

	httpTotal    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New создает и регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,
		outboundTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schedclient_outbound_requests_total",
			Help: "Outbound requests to the scheduling service by operation and status code.",
		}, []string{"service", "operation", "status"}),
		outboundDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schedclient_outbound_request_duration_seconds",
			Help:    "Outbound request duration to the scheduling service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		httpTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schedclient_http_requests_total",
			Help: "Handled HTTP requests by method, route and status code.",
		}, []string{"service", "method", "route", "status"}),
		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schedclient_http_request_duration_seconds",
			Help:    "Handled HTTP request duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
	}
}

// ObserveOutbound фиксирует исходящий запрос к scheduling service
// statusCode = 0 означает транспортную ошибку (запрос не дошёл до сервера)
func (m *Metrics) ObserveOutbound(operation string, statusCode int, duration time.Duration) {
	m.outboundTotal.WithLabelValues(m.serviceName, operation, strconv.Itoa(statusCode)).Inc()
	m.outboundDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// ObserveHTTP фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTP(method, route string, statusCode int, duration time.Duration) {
	m.httpTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}
