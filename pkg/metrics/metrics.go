// Package metrics exposes Prometheus instrumentation for HTTP traffic and domain operations
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for RecordOperation
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Recorder counts domain operations by name and outcome
type Recorder interface {
	RecordOperation(operation, outcome string)
}

// Metrics holds the collectors of one service
type Metrics struct {
	service          string
	gatherer         prometheus.Gatherer
	requestCounter   *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	statusCategories *prometheus.CounterVec
	operations       *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid duplicate registration on the default registry.
func New(reg *prometheus.Registry, service string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service:  service,
		gatherer: reg,
		requestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		statusCategories: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		}, []string{"service", "category"}),
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "procurement_operations_total",
			Help: "Domain operations by name and outcome",
		}, []string{"service", "operation", "outcome"}),
	}
}

// RecordOperation increments the domain operation counter
func (m *Metrics) RecordOperation(operation, outcome string) {
	m.operations.WithLabelValues(m.service, operation, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records count, latency and status category per chi route pattern.
// The pattern is used instead of the raw path to keep label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := routePattern(r)

		m.requestCounter.WithLabelValues(m.service, r.Method, path, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
		m.statusCategories.WithLabelValues(m.service, statusCategory(status)).Inc()
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func statusCategory(status int) string {
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

// Noop discards every recording
type Noop struct{}

// RecordOperation does nothing
func (Noop) RecordOperation(string, string) {}
