package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus instruments the server records.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	AdmissionsCreatedTotal prometheus.Counter
	DischargesCreatedTotal prometheus.Counter
	AllocationCallsTotal   *prometheus.CounterVec
}

// NewCollector registers the instruments on a fresh registry. Namespace
// prefixes every metric name.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		AdmissionsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hospital",
			Name:      "admissions_created_total",
			Help:      "Total admissions recorded.",
		}),

		DischargesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hospital",
			Name:      "discharges_created_total",
			Help:      "Total discharges recorded.",
		}),

		AllocationCallsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hospital",
			Name:      "allocation_calls_total",
			Help:      "Room and bed allocation calls by outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveAllocation counts one room/bed allocation call by outcome.
func (m *Collector) ObserveAllocation(outcome string) {
	m.AllocationCallsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the collector's registry in the Prometheus text format.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency, and in-flight gauge per route.
func (m *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.InFlightGauge.Inc()

			err := next(c)

			m.InFlightGauge.Dec()
			status := strconv.Itoa(c.Response().Status)
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			m.RequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.RequestDuration.WithLabelValues(c.Request().Method, path, status).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
