package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for the API server.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	TradesRecorded  prometheus.Counter
	AdvisoriesTotal prometheus.Counter
}

// NewMetrics creates and registers the server metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "advisor_http_requests_total",
			Help: "Total HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisor_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}),
		TradesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "advisor_trades_recorded_total",
			Help: "Trades accepted through the API.",
		}),
		AdvisoriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "advisor_advisories_total",
			Help: "Advisory reports generated through the API.",
		}),
	}
}

// Handler exposes the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
