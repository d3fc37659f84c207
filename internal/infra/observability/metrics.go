package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

// Metrics holds all Prometheus metrics for the budgeteer API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	externalErrors    *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	monthComputations *prometheus.CounterVec
	requestsTotal     *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgeteer_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeteer_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeteer_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeteer_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		monthComputations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeteer_month_computations_total",
				Help: "Total month budget views assembled.",
			},
			[]string{"trigger"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgeteer_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrMonthComputation counts an assembled month view. Trigger is "get"
// for reads and "refresh" for explicit recomputation requests.
func (m *Metrics) IncrMonthComputation(trigger string) {
	m.monthComputations.WithLabelValues(trigger).Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetSummarySnapshot returns a snapshot of core metrics suitable for the
// GET /v1/metrics/summary endpoint.
func (m *Metrics) GetSummarySnapshot() *domain.MetricsSummary {
	// Prometheus counters expose cumulative values.
	totalRequests := getCounterValue(m.requestsTotal, "success") +
		getCounterValue(m.requestsTotal, "error")
	errorCount := getCounterValue(m.requestsTotal, "error")
	monthComputations := getCounterValue(m.monthComputations, "get") +
		getCounterValue(m.monthComputations, "refresh")
	cacheHits := getCounterValue(m.cacheHits, "budgets")
	cacheMisses := getCounterValue(m.cacheMisses, "budgets")

	errorRate := float64(0)
	cacheHitRate := float64(0)
	if totalRequests > 0 {
		errorRate = errorCount / totalRequests
	}
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.MetricsSummary{
		TotalRequests:     int64(totalRequests),
		ErrorRate:         errorRate,
		MonthComputations: int64(monthComputations),
		CacheHitRate:      cacheHitRate,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
