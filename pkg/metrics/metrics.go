package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор прометеевских метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsConfirmedTotal prometheus.Counter
	BookingConflictsTotal  prometheus.Counter
	BookingFailuresTotal   prometheus.Counter
}

// IncConfirmed увеличивает счетчик подтверждённых бронирований
func (m *Metrics) IncConfirmed() { m.BookingsConfirmedTotal.Inc() }

// IncConflict увеличивает счетчик конфликтов занятого слота
func (m *Metrics) IncConflict() { m.BookingConflictsTotal.Inc() }

// IncFailure увеличивает счетчик неудавшихся подтверждений
func (m *Metrics) IncFailure() { m.BookingFailuresTotal.Inc() }

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		BookingsConfirmedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_confirmed_total",
			Help:        "Total number of successfully confirmed bookings",
			ConstLabels: labels,
		}),

		BookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Total number of confirmations rejected because the slot was already taken",
			ConstLabels: labels,
		}),

		BookingFailuresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_failures_total",
			Help:        "Total number of confirmations failed after retries were exhausted",
			ConstLabels: labels,
		}),
	}
}
