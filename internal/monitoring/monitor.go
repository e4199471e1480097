package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Generation kinds
const (
	KindRecommendation = "recommendation"
	KindEnrichment     = "enrichment"
	KindDescription    = "description"
)

// Outcomes recorded for generations and lookups
const (
	OutcomeSuccess           = "success"
	OutcomeMissingCredential = "missing_credential"
	OutcomeUpstreamError     = "upstream_error"
	OutcomeMalformed         = "malformed"
	OutcomeNotFound          = "not_found"
)

// Monitor collects the service metrics. Every recorded value goes both to a
// prometheus registry and to an in-process snapshot served by the stats API.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time

	registry          *prometheus.Registry
	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	lookups           *prometheus.CounterVec
	inventoryOps      *prometheus.CounterVec
	compliance        *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	sessions          prometheus.Gauge
}

// NewMonitor creates a new monitoring instance with its own registry
func NewMonitor() *Monitor {
	m := &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
		registry:  prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drinkingman",
			Name:      "generations_total",
			Help:      "Language model generations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "drinkingman",
			Name:      "generation_duration_seconds",
			Help:      "Language model call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"kind"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drinkingman",
			Name:      "catalog_lookups_total",
			Help:      "Cocktail lookups by source and outcome.",
		}, []string{"source", "outcome"}),
		inventoryOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drinkingman",
			Name:      "inventory_operations_total",
			Help:      "Inventory mutations by operation.",
		}, []string{"op"}),
		compliance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drinkingman",
			Name:      "recommendation_violations_total",
			Help:      "Recommendations failing a post-hoc compliance check.",
		}, []string{"check"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drinkingman",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "drinkingman",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drinkingman",
			Name:      "enrichment_sessions",
			Help:      "Open enrichment websocket sessions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.generations,
		m.generationLatency,
		m.lookups,
		m.inventoryOps,
		m.compliance,
		m.httpRequests,
		m.httpLatency,
		m.sessions,
	)
	return m
}

// Registry exposes the prometheus registry for the metrics endpoint
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGeneration records the outcome and latency of a language model call
func (m *Monitor) RecordGeneration(kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, outcome).Inc()
	if outcome != OutcomeMissingCredential {
		m.generationLatency.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
	m.increment("generation_" + kind + "_" + outcome)
}

// RecordLookup records a catalog lookup. source is "bundled" or "live".
func (m *Monitor) RecordLookup(source, outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(source, outcome).Inc()
	m.increment("lookup_" + source + "_" + outcome)
}

// RecordInventoryOp counts an inventory mutation
func (m *Monitor) RecordInventoryOp(op string) {
	if m == nil {
		return
	}
	m.inventoryOps.WithLabelValues(op).Inc()
	m.increment("inventory_" + op)
}

// RecordViolation counts a failed compliance check
func (m *Monitor) RecordViolation(check string) {
	if m == nil {
		return
	}
	m.compliance.WithLabelValues(check).Inc()
	m.increment("violation_" + check)
}

// RecordHTTP records a served request
func (m *Monitor) RecordHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SessionOpened tracks a new enrichment stream
func (m *Monitor) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
	m.increment("sessions_opened")
}

// SessionClosed tracks a finished enrichment stream
func (m *Monitor) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

// RecordMetric records a metric value in the snapshot
func (m *Monitor) RecordMetric(name string, value interface{}) {
	if m == nil {
		return
	}
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

func (m *Monitor) increment(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	count, _ := m.metrics[name].(int)
	m.metrics[name] = count + 1
}
