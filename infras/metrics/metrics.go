package metrics

import (
	"net/http"
	"strconv"
	"time"

	"hotel/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

type Metrics interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
	BookingCreated(currency string)
	BookingConflict()
	BookingDeleted()
	Handler() http.Handler
}

type prometheusMetrics struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	bookingsCreated  *prometheus.CounterVec
	bookingConflicts prometheus.Counter
	bookingsDeleted  prometheus.Counter
}

// New registers the collectors on a private registry so tests can build as many instances as they need.
func New(cfg *config.Config) Metrics {
	app := cfg.App.Name
	if app == "" {
		app = namespace
	}

	constLabels := prometheus.Labels{"app": app}

	m := &prometheusMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bookings_created_total",
			Help:        "Bookings persisted, by currency.",
			ConstLabels: constLabels,
		}, []string{"currency"}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "booking_conflicts_total",
			Help:        "Booking requests rejected because the room was already taken.",
			ConstLabels: constLabels,
		}),
		bookingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "bookings_deleted_total",
			Help:        "Bookings removed by an administrator.",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.bookingsCreated,
		m.bookingConflicts,
		m.bookingsDeleted,
	)

	return m
}

func (m *prometheusMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *prometheusMetrics) BookingCreated(currency string) {
	m.bookingsCreated.WithLabelValues(currency).Inc()
}

func (m *prometheusMetrics) BookingConflict() {
	m.bookingConflicts.Inc()
}

func (m *prometheusMetrics) BookingDeleted() {
	m.bookingsDeleted.Inc()
}

func (m *prometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
