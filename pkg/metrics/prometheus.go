// Package metrics provides Prometheus metrics for the AI readiness leaderboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Fetch Metrics - remote provider calls
	fetchBatches       prometheus.Counter
	fetchBatchFailures prometheus.Counter
	fetchRetries       prometheus.Counter
	fetchBatchLatency  prometheus.Histogram
	reposListed        prometheus.Gauge

	// Scoring Metrics
	reposScored  prometheus.Counter
	skillCount   prometheus.Histogram
	levelRepos   *prometheus.GaugeVec
	runDuration  prometheus.Histogram
	lastRunUnix  prometheus.Gauge
	reposWithAny prometheus.Gauge

	// Snapshot Metrics
	snapshotSaves   prometheus.Counter
	snapshotErrors  prometheus.Counter
	snapshotReloads prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "aiready",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	if !m.enabled {
		auto = promauto.With(nil)
	}

	m.fetchBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_batches_total",
		Help:        "Total number of signal batches requested from the provider",
		ConstLabels: m.constLabels,
	})

	m.fetchBatchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_batch_failures_total",
		Help:        "Batches that degraded to empty signals after all retries",
		ConstLabels: m.constLabels,
	})

	m.fetchRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_retries_total",
		Help:        "Total number of batch retries",
		ConstLabels: m.constLabels,
	})

	m.fetchBatchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_batch_latency_milliseconds",
		Help:        "Latency of a single batch request in milliseconds",
		Buckets:     []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		ConstLabels: m.constLabels,
	})

	m.reposListed = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "repositories_listed",
		Help:        "Repositories returned by the last organization listing",
		ConstLabels: m.constLabels,
	})

	m.reposScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "repositories_scored_total",
		Help:        "Total number of repositories scored",
		ConstLabels: m.constLabels,
	})

	m.skillCount = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "skill_count",
		Help:        "Distribution of unlocked skills per repository",
		Buckets:     prometheus.LinearBuckets(0, 1, 16),
		ConstLabels: m.constLabels,
	})

	m.levelRepos = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "repositories_by_level",
		Help:        "Repositories per level in the current snapshot",
		ConstLabels: m.constLabels,
	}, []string{"level"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Duration of a full snapshot run in seconds",
		Buckets:     []float64{1, 5, 15, 30, 60, 120, 300, 600},
		ConstLabels: m.constLabels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time of the last completed run",
		ConstLabels: m.constLabels,
	})

	m.reposWithAny = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "repositories_with_any_skill",
		Help:        "Repositories with at least one skill in the current snapshot",
		ConstLabels: m.constLabels,
	})

	m.snapshotSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_saves_total",
		Help:        "Total number of snapshots persisted",
		ConstLabels: m.constLabels,
	})

	m.snapshotErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_errors_total",
		Help:        "Total number of snapshot save or load errors",
		ConstLabels: m.constLabels,
	})

	m.snapshotReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_reloads_total",
		Help:        "Total number of snapshot reloads in serve mode",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and error type",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})
}

// RecordFetchBatch records a batch request and its latency in milliseconds.
func (m *Manager) RecordFetchBatch(latencyMs float64) {
	m.fetchBatches.Inc()
	m.fetchBatchLatency.Observe(latencyMs)
}

// RecordFetchBatchFailure increments the degraded batch counter.
func (m *Manager) RecordFetchBatchFailure() { m.fetchBatchFailures.Inc() }

// RecordFetchRetry increments the retry counter.
func (m *Manager) RecordFetchRetry() { m.fetchRetries.Inc() }

// UpdateReposListed sets the number of listed repositories.
func (m *Manager) UpdateReposListed(n int) { m.reposListed.Set(float64(n)) }

// RecordRepositoryScored records one scored repository.
func (m *Manager) RecordRepositoryScored(skillCount int) {
	m.reposScored.Inc()
	m.skillCount.Observe(float64(skillCount))
}

// UpdateLevelDistribution replaces the per-level gauges.
func (m *Manager) UpdateLevelDistribution(counts map[string]int) {
	m.levelRepos.Reset()
	for level, n := range counts {
		m.levelRepos.WithLabelValues(level).Set(float64(n))
	}
}

// UpdateReposWithAnySkill sets the repositories-with-any-skill gauge.
func (m *Manager) UpdateReposWithAnySkill(n int) { m.reposWithAny.Set(float64(n)) }

// RecordRun records a completed run.
func (m *Manager) RecordRun(seconds float64, finishedUnix int64) {
	m.runDuration.Observe(seconds)
	m.lastRunUnix.Set(float64(finishedUnix))
}

// RecordSnapshotSave increments the snapshot save counter.
func (m *Manager) RecordSnapshotSave() { m.snapshotSaves.Inc() }

// RecordSnapshotError increments the snapshot error counter.
func (m *Manager) RecordSnapshotError() { m.snapshotErrors.Inc() }

// RecordSnapshotReload increments the snapshot reload counter.
func (m *Manager) RecordSnapshotReload() { m.snapshotReloads.Inc() }

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error for a component.
func (m *Manager) RecordError(component, errorType string) {
	m.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// Default returns the global manager registered on the custom registry.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
