// Package server exposes operational metrics about the calculator over
// HTTP in Prometheus format.
package server

import (
	"net/http"
	"time"

	"github.com/agbru/zzint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors of the application. Each
// instance carries its own registry, so tests can create metrics freely
// without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	evalTotal      *prometheus.CounterVec
	evalErrors     prometheus.Counter
	evalDuration   prometheus.Histogram
}

// NewMetrics creates and registers all application collectors, including
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "zzcalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zzcalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		evalTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zzcalc_evaluations_total",
			Help: "Total number of expression evaluations by operation.",
		}, []string{"operation"}),
		evalErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zzcalc_evaluation_errors_total",
			Help: "Total number of failed expression evaluations.",
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "zzcalc_evaluation_duration_seconds",
			Help:    "Duration of expression evaluations.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
	}

	tempsGauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "zzcalc_tracked_temporaries",
		Help: "Number of live temporary digit buffers in the engine.",
	}, func() float64 {
		return float64(zzint.TrackedTemps())
	})

	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.evalTotal,
		m.evalErrors,
		m.evalDuration,
		tempsGauge,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests records the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests records the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveEvaluation records one expression evaluation for the given
// operation keyword.
func (m *Metrics) ObserveEvaluation(operation string, duration time.Duration, err error) {
	m.evalTotal.WithLabelValues(operation).Inc()
	m.evalDuration.Observe(duration.Seconds())
	if err != nil {
		m.evalErrors.Inc()
	}
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
