// Package metrics exposes Prometheus instrumentation for the planning
// engine. All collectors live on a private registry so embedding programs
// can mount the handler without colliding with their own metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters and timings for planning runs.
type Metrics struct {
	registry *prometheus.Registry

	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	runDuration   prometheus.Histogram

	ordersPlanned    *prometheus.CounterVec
	exceptionsRaised *prometheus.CounterVec
	itemsPlanned     prometheus.Counter
}

// New creates a metrics collector with its own registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_started_total",
			Help:      "Total number of planning runs started",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_completed_total",
			Help:      "Total number of planning runs completed",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of planning run execution in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ordersPlanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_planned_total",
			Help:      "Total number of planned orders created",
		}, []string{"kind"}),
		exceptionsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exceptions_raised_total",
			Help:      "Total number of plan exceptions raised",
		}, []string{"kind"}),
		itemsPlanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_planned_total",
			Help:      "Total number of items netted across all runs",
		}),
	}

	registry.MustRegister(
		m.runsStarted,
		m.runsCompleted,
		m.runDuration,
		m.ordersPlanned,
		m.exceptionsRaised,
		m.itemsPlanned,
	)
	return m
}

// RecordRunStarted increments the started-run counter.
func (m *Metrics) RecordRunStarted() {
	m.runsStarted.Inc()
}

// RecordRunCompleted records a finished run with its outcome and duration.
func (m *Metrics) RecordRunCompleted(status string, duration time.Duration, itemCount int) {
	m.runsCompleted.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.itemsPlanned.Add(float64(itemCount))
}

// RecordOrderPlanned counts one planned order by kind.
func (m *Metrics) RecordOrderPlanned(kind string) {
	m.ordersPlanned.WithLabelValues(kind).Inc()
}

// RecordException counts one plan exception by kind.
func (m *Metrics) RecordException(kind string) {
	m.exceptionsRaised.WithLabelValues(kind).Inc()
}

// Handler returns an HTTP handler serving the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for test scraping.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
