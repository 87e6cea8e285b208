// Package middleware provides cross-cutting concerns for the scoring engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-scoreboard/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It provides real-time monitoring of state mutations, their latency and
// the size of the scoring state.
type PrometheusMetrics struct {
	operationLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	stateGauges      *prometheus.GaugeVec
	valueHistograms  *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// all required metrics with reg. A nil reg uses the default registerer.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoreboard_operation_duration_seconds",
				Help:    "Execution time of state mutations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoreboard_operations_total",
				Help: "Total number of state mutations by outcome.",
			},
			[]string{"operation", "status"},
		),
		stateGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scoreboard_state",
				Help: "Current size of the scoring state.",
			},
			[]string{"metric"},
		),
		valueHistograms: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoreboard_values",
				Help:    "Distribution of recorded values such as entry totals.",
				Buckets: prometheus.LinearBuckets(0, 50, 10),
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	_ map[string]string,
) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters. The operation is taken from the metric name and the
// outcome from the "status" label, defaulting to success.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	status, ok := labels["status"]
	if !ok || status == "" {
		status = "success"
	}
	pm.operationCounter.WithLabelValues(metric, status).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, _ map[string]string,
) {
	pm.stateGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, _ map[string]string,
) {
	pm.valueHistograms.WithLabelValues(metric).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
