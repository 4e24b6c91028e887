// Package metrics provides Prometheus metrics collection for the embedding
// service. It tracks request volume, latency, token throughput, and errors.
//
// Unlike package-global promauto collectors, all instruments hang off a single
// registry constructed at startup and injected into the handlers. Tests get an
// isolated registry per instance and nothing leaks across processes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "semembed"

// Metrics owns the Prometheus registry and the four service instruments.
// Counters are monotonic; the histogram records per-request latency. All
// instruments are safe for concurrent update and are never reset during the
// process lifetime.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts every embedding request, including ones that
	// later fail validation or inference.
	RequestsTotal prometheus.Counter

	// ErrorsTotal counts failed embedding requests.
	ErrorsTotal prometheus.Counter

	// TokensProcessed counts approximate tokens accepted for embedding.
	TokensProcessed prometheus.Counter

	// RequestDuration records end-to-end request latency in seconds.
	RequestDuration prometheus.Histogram
}

// New constructs a Metrics instance with its own isolated registry and all
// instruments registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of embedding requests",
		}),
		ErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors",
		}),
		TokensProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_processed_total",
			Help:      "Total number of tokens processed",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.ErrorsTotal,
		m.TokensProcessed,
		m.RequestDuration,
	)

	return m
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition endpoint for this registry. Output is the
// Prometheus text format; an encoding fault yields HTTP 500.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
