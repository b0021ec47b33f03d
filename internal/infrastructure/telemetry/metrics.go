package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace prefixes every metric name
const MetricsNamespace = "workorder"

// Render outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Metrics owns a private registry so tests and multiple servers in one
// process never collide on the default registerer.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	documentsTotal   *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	documentPages    prometheus.Histogram
	documentBytes    prometheus.Histogram
	validationErrors *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// NewMetrics registers the service collectors plus the Go runtime and
// process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.documentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "documents_total",
		Help:      "Work order documents requested, by outcome.",
	}, []string{"outcome"})

	m.renderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent laying out and writing a PDF.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	m.documentPages = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "document_pages",
		Help:      "Pages per rendered document.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	})

	m.documentBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "document_bytes",
		Help:      "Size of rendered documents in bytes.",
		Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
	})

	m.validationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "validation_errors_total",
		Help:      "Rejected payload fields, by top-level field name.",
	}, []string{"field"})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	m.httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.documentsTotal,
		m.renderDuration,
		m.documentPages,
		m.documentBytes,
		m.validationErrors,
		m.httpRequests,
		m.httpDuration,
		m.httpInFlight,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRender records a successfully rendered document
func (m *Metrics) ObserveRender(d time.Duration, pages, size int) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(OutcomeSuccess).Inc()
	m.renderDuration.Observe(d.Seconds())
	m.documentPages.Observe(float64(pages))
	m.documentBytes.Observe(float64(size))
}

// ObserveValidationFailure records a rejected payload. Nested paths such as
// technicians[0].name are counted once under their top-level field.
func (m *Metrics) ObserveValidationFailure(fields []string) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(OutcomeInvalid).Inc()
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		top := topLevelField(f)
		if _, ok := seen[top]; ok {
			continue
		}
		seen[top] = struct{}{}
		m.validationErrors.WithLabelValues(top).Inc()
	}
}

func topLevelField(path string) string {
	if i := strings.IndexAny(path, "[."); i > 0 {
		return path[:i]
	}
	return path
}

// ObserveFailure records a render that failed or was canceled
func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.documentsTotal.WithLabelValues(outcome).Inc()
}

// HTTPStarted increments the in-flight gauge and returns the matching
// completion func.
func (m *Metrics) HTTPStarted() func(method, route string, status int, d time.Duration) {
	m.httpInFlight.Inc()
	return func(method, route string, status int, d time.Duration) {
		m.httpInFlight.Dec()
		m.httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
