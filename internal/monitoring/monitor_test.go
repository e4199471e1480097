package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordGeneration(t *testing.T) {
	m := NewMonitor()

	m.RecordGeneration(KindRecommendation, OutcomeSuccess, 2*time.Second)
	m.RecordGeneration(KindRecommendation, OutcomeSuccess, time.Second)
	m.RecordGeneration(KindRecommendation, OutcomeMalformed, time.Second)

	got := testutil.ToFloat64(m.generations.WithLabelValues(KindRecommendation, OutcomeSuccess))
	if got != 2 {
		t.Errorf("Expected 2 successful generations, got %v", got)
	}

	metrics := m.GetMetrics()
	if metrics["generation_recommendation_success"] != 2 {
		t.Errorf("Expected snapshot count 2, got %v", metrics["generation_recommendation_success"])
	}
	if metrics["generation_recommendation_malformed"] != 1 {
		t.Errorf("Expected snapshot count 1, got %v", metrics["generation_recommendation_malformed"])
	}
}

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor()

	m.RecordLookup("live", OutcomeNotFound)
	m.RecordInventoryOp("toggle")
	m.RecordViolation("blacklisted_ingredient")
	m.RecordHTTP("GET", "/health", 200, time.Millisecond)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if v := testutil.ToFloat64(m.lookups.WithLabelValues("live", OutcomeNotFound)); v != 1 {
		t.Errorf("Expected 1 lookup, got %v", v)
	}
	if v := testutil.ToFloat64(m.inventoryOps.WithLabelValues("toggle")); v != 1 {
		t.Errorf("Expected 1 toggle, got %v", v)
	}
	if v := testutil.ToFloat64(m.compliance.WithLabelValues("blacklisted_ingredient")); v != 1 {
		t.Errorf("Expected 1 violation, got %v", v)
	}
	if v := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")); v != 1 {
		t.Errorf("Expected 1 request, got %v", v)
	}
	if v := testutil.ToFloat64(m.sessions); v != 1 {
		t.Errorf("Expected 1 open session, got %v", v)
	}
}

func TestMonitor_NilSafe(t *testing.T) {
	var m *Monitor
	m.RecordGeneration(KindDescription, OutcomeSuccess, time.Second)
	m.RecordLookup("bundled", OutcomeSuccess)
	m.SessionOpened()
	m.RecordMetric("catalog_dataset_records", 3)
}

