// Package telemetry exposes in-process Prometheus metrics for reductions.
//
// The application does not serve metrics over the network. Instead a private
// registry collects counters during execution and the verbose output mode
// dumps them in the Prometheus text exposition format at exit.
package telemetry

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds the application metric collectors backed by a private
// registry.
type Metrics struct {
	registry *prometheus.Registry

	reductionsTotal   *prometheus.CounterVec
	reductionDuration *prometheus.HistogramVec
	counterDemoRuns   prometheus.Counter
	workerPanics      prometheus.Counter
}

// NewMetrics creates a Metrics instance with its own registry, so that
// repeated construction in tests never trips duplicate registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		reductionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parsum_reductions_total",
			Help: "Number of completed reductions by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		reductionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parsum_reduction_duration_seconds",
			Help:    "Reduction wall-clock duration by strategy.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"strategy"}),
		counterDemoRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parsum_counter_demo_runs_total",
			Help: "Number of shared counter demonstration runs.",
		}),
		workerPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "parsum_worker_panics_total",
			Help: "Number of panics recovered from reduction workers.",
		}),
	}

	reg.MustRegister(
		m.reductionsTotal,
		m.reductionDuration,
		m.counterDemoRuns,
		m.workerPanics,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveReduction records one finished reduction for the given strategy.
func (m *Metrics) ObserveReduction(strategy string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.reductionsTotal.WithLabelValues(strategy, outcome).Inc()
	m.reductionDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// RecordDemoRun records one shared counter demonstration run.
func (m *Metrics) RecordDemoRun() {
	m.counterDemoRuns.Inc()
}

// RecordWorkerPanic records one recovered worker panic.
func (m *Metrics) RecordWorkerPanic() {
	m.workerPanics.Inc()
}

// WriteText gathers all registered collectors and writes them to w in the
// Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
