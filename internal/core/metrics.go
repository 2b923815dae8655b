package core

import (
	"context"
	"errors"
	"fmt"
	"maturity/pkg/domain"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels the result of a store operation.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeIgnored  Outcome = "ignored"  // unknown dimension or proof point
	OutcomeRejected Outcome = "rejected" // invalid input, state unchanged
	OutcomeError    Outcome = "error"    // applied in memory, not persisted
)

// MetricsRecorder receives operation timings and the progress gauge.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, outcome Outcome, duration time.Duration)
	SetProgress(p domain.Progress)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, Outcome, time.Duration) {}
func (noopMetrics) SetProgress(domain.Progress) {}

// PrometheusMetrics exports store metrics through client_golang.
type PrometheusMetrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	progress   prometheus.Gauge
}

// NewPrometheusMetrics registers the store collectors with reg. Collectors
// already registered by an earlier call are reused.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maturity_store_operations_total",
			Help: "Store operations by outcome.",
		}, []string{"operation", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maturity_store_operation_duration_seconds",
			Help:    "Store operation latency including persistence.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"operation"}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "maturity_assessment_progress_ratio",
			Help: "Share of dimensions with a maturity level selected.",
		}),
	}
	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.durations, err = register(reg, m.durations); err != nil {
		return nil, err
	}
	if m.progress, err = register(reg, m.progress); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register metrics: %w", err)
	}
	return c, nil
}

// Observe records an operation outcome.
func (m *PrometheusMetrics) Observe(_ context.Context, operation string, outcome Outcome, duration time.Duration) {
	if operation == "" {
		return
	}
	m.operations.WithLabelValues(operation, string(outcome)).Inc()
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetProgress publishes completed/total as a ratio.
func (m *PrometheusMetrics) SetProgress(p domain.Progress) {
	if p.Total == 0 {
		m.progress.Set(0)
		return
	}
	m.progress.Set(float64(p.Completed) / float64(p.Total))
}
