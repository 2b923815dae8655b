package core

import (
	"context"
	"errors"
	"maturity/internal/infra/persistence/memory"
	"maturity/pkg/domain"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusMetricsRecordOutcomes(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics, err := NewPrometheusMetrics(reg)
	if err != nil {
		t.Fatalf("NewPrometheusMetrics: %v", err)
	}
	storage := memory.NewStore()
	s := newTestStore(t, storage, WithMetrics(metrics))

	_, _ = s.SetMaturityLevel(ctx, "communications", domain.MaturityLaunch)
	_, _ = s.SetMaturityLevel(ctx, "support", domain.MaturityLaunch)
	_, _ = s.SetMaturityLevel(ctx, "nope", domain.MaturityLaunch)
	_, _ = s.SetMaturityLevel(ctx, "support", domain.MaturityLevel("bogus"))
	storage.FailSaves(errors.New("disk full"))
	_, _ = s.SetOverallNotes(ctx, "x")

	checks := []struct {
		op, status string
		want       float64
	}{
		{"update_dimension", "success", 2},
		{"update_dimension", "ignored", 1},
		{"update_dimension", "rejected", 1},
		{"set_overall_notes", "error", 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(metrics.operations.WithLabelValues(c.op, c.status)); got != c.want {
			t.Fatalf("%s/%s: got %v want %v", c.op, c.status, got, c.want)
		}
	}
	if got := testutil.ToFloat64(metrics.progress); got != 2.0/7.0 {
		t.Fatalf("progress ratio: got %v", got)
	}
	if n := testutil.CollectAndCount(metrics.durations); n != 2 {
		t.Fatalf("expected durations for 2 operations, got %d", n)
	}
}

func TestPrometheusMetricsReuseRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusMetrics(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPrometheusMetrics(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	second.Observe(context.Background(), "reset", OutcomeSuccess, 0)
	if got := testutil.ToFloat64(first.operations.WithLabelValues("reset", "success")); got != 1 {
		t.Fatalf("expected shared collector, got %v", got)
	}
	second.Observe(context.Background(), "", OutcomeSuccess, 0)
	second.SetProgress(domain.Progress{})
	if got := testutil.ToFloat64(first.progress); got != 0 {
		t.Fatalf("expected zero progress for empty catalog, got %v", got)
	}
}
