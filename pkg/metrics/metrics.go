package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics portal collectors, registered on their own registry
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syllabus_portal",
			Name:      "backend_requests_total",
			Help:      "Backend REST calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "syllabus_portal",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend REST call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "syllabus_portal",
			Name:      "http_requests_total",
			Help:      "Portal HTTP requests by route and status class.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.backendRequests,
		m.backendLatency,
		m.httpRequests,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveBackend records one backend call; outcome is "ok", "service_error" or "network_error"
func (m *Metrics) ObserveBackend(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(op, outcome).Inc()
	m.backendLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveHTTP records one portal request
func (m *Metrics) ObserveHTTP(route, statusClass string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, statusClass).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
