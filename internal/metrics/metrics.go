// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tb16pix"

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	GraphLoads      *prometheus.CounterVec
	GraphTriples    prometheus.Gauge
	GraphReady      prometheus.Gauge
	SPARQLQueries   *prometheus.CounterVec
}

// New creates the metrics on a fresh registry that also carries the Go
// runtime and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		GraphLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_loads_total",
			Help:      "Background graph loads by outcome",
		}, []string{"outcome"}),
		GraphTriples: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_triples",
			Help:      "Number of triples in the loaded background graph",
		}),
		GraphReady: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_ready",
			Help:      "1 when the background graph is ready",
		}),
		SPARQLQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sparql_queries_total",
			Help:      "Proxied SPARQL queries by outcome",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one completed request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// GraphLoaded records a successful load
func (m *Metrics) GraphLoaded(triples int, fromCache bool) {
	outcome := "parsed"
	if fromCache {
		outcome = "cached"
	}
	m.GraphLoads.WithLabelValues(outcome).Inc()
	m.GraphTriples.Set(float64(triples))
	m.GraphReady.Set(1)
}

// GraphFailed records a failed load
func (m *Metrics) GraphFailed() {
	m.GraphLoads.WithLabelValues("failed").Inc()
	m.GraphReady.Set(0)
}

// GraphInvalidated records that the graph was dropped
func (m *Metrics) GraphInvalidated() {
	m.GraphReady.Set(0)
}

// SPARQLQuery records a proxied query outcome
func (m *Metrics) SPARQLQuery(outcome string) {
	m.SPARQLQueries.WithLabelValues(outcome).Inc()
}
