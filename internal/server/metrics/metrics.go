// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics counts requests and observes their latency per route.
type HTTPMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
}

// New registers the forum metrics and the Go runtime collectors on a fresh
// registry.
func New() *HTTPMetrics {
	reg := prometheus.NewRegistry()

	m := &HTTPMetrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qaforum_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qaforum_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		authFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qaforum_auth_failures_total",
				Help: "Requests rejected by the authentication middleware",
			},
			[]string{"reason"},
		),
	}

	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.authFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveRequest records one finished request. route is the route template,
// not the raw path, to keep label cardinality bounded.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// AuthFailure counts a rejected token. reason is one of a small fixed set.
func (m *HTTPMetrics) AuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
