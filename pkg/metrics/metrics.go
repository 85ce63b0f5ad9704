package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	// Мастер бронирования
	WizardTransitions *prometheus.CounterVec
	BookingsConfirmed prometheus.Counter
	ActiveSessions    prometheus.Gauge
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		WizardTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_wizard_transitions_total",
			Help:        "Booking wizard intents by outcome",
			ConstLabels: labels,
		}, []string{"intent", "result"}),
		BookingsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_confirmed_total",
			Help:        "Number of confirmed bookings",
			ConstLabels: labels,
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_wizard_active_sessions",
			Help:        "Number of live booking wizard sessions",
			ConstLabels: labels,
		}),
	}
}

// ObserveTransition учитывает намерение мастера бронирования и его исход
func (m *Metrics) ObserveTransition(intent, result string) {
	m.WizardTransitions.WithLabelValues(intent, result).Inc()
}

// ObserveConfirmed учитывает подтвержденное бронирование
func (m *Metrics) ObserveConfirmed() {
	m.BookingsConfirmed.Inc()
}

// SetActiveSessions выставляет число живых сессий мастера
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
