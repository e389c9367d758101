package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)

	m.IncMutation("add_item", nil)
	m.IncMutation("add_item", errors.New("boom"))
	m.ObserveEstimate(250*time.Millisecond, nil)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "outcome", "ok"); err != nil {
		t.Fatalf("fetch ok counter: %v", err)
	} else if got != 1 {
		t.Fatalf("expected ok=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "outcome", "error"); err != nil {
		t.Fatalf("fetch error counter: %v", err)
	} else if got != 1 {
		t.Fatalf("expected error=1, got %f", got)
	}

	if !hasMetricFamily(mfs, "cart_estimate_duration_seconds") {
		t.Fatal("expected estimate duration histogram to be registered")
	}
}

func TestCartMetricsNilReceiverIsSafe(t *testing.T) {
	var m *CartMetrics
	m.IncMutation("add_item", nil)
	m.ObserveEstimate(time.Second, nil)

	empty := NewCartMetrics(nil)
	empty.IncMutation("add_item", nil)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, labelName, labelValue string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelName && label.GetValue() == labelValue {
					return metric.GetCounter().GetValue(), nil
				}
			}
		}
	}
	return 0, fmt.Errorf("metric %s{%s=%q} not found", name, labelName, labelValue)
}

func hasMetricFamily(mfs []*dto.MetricFamily, name string) bool {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}
