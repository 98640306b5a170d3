// Package metrics provides Prometheus metrics for the podium judging service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the podium service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core Business Metrics - submission flow
	submissionsAccepted prometheus.Counter
	submissionsRejected *prometheus.CounterVec
	recordsTotal        prometheus.Gauge
	orphanedRecords     prometheus.Gauge

	// Store Metrics - persistence health
	storeSaveDuration prometheus.Histogram
	storeSaveRetries  prometheus.Counter
	storeSaveErrors   prometheus.Counter
	storeLoadErrors   prometheus.Counter

	// Session Metrics - access gate
	activeSessions prometheus.Gauge
	loginFailures  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "judging",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register on the configured registry (custom by default).
	auto := promauto.With(m.registry)

	m.submissionsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_accepted_total",
		Help:      "Total number of score submissions accepted and persisted",
	})

	m.submissionsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "submissions_rejected_total",
			Help:      "Total number of score submissions rejected by validation, by field",
		},
		[]string{"field"},
	)

	m.recordsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_records_total",
		Help:      "Current number of score records held in the store",
	})

	m.orphanedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orphaned_records_total",
		Help:      "Records whose team, judge or category is no longer in the event configuration",
	})

	m.storeSaveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_duration_milliseconds",
		Help:      "Histogram of score store save duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeSaveRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_retries_total",
		Help:      "Total number of retried score store saves",
	})

	m.storeSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_errors_total",
		Help:      "Total number of score store saves that failed after all retries",
	})

	m.storeLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_load_errors_total",
		Help:      "Total number of score store load failures (corrupt file)",
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Current number of live judge sessions",
	})

	m.loginFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "login_failures_total",
		Help:      "Total number of rejected passcode attempts",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordSubmissionAccepted increments the accepted submissions counter.
func RecordSubmissionAccepted() {
	globalManager.submissionsAccepted.Inc()
}

// RecordSubmissionRejected increments the rejected submissions counter for a field.
func RecordSubmissionRejected(field string) {
	globalManager.submissionsRejected.WithLabelValues(field).Inc()
}

// UpdateRecordsTotal sets the current score record count.
func UpdateRecordsTotal(count int) {
	globalManager.recordsTotal.Set(float64(count))
}

// UpdateOrphanedRecords sets the current orphaned record count.
func UpdateOrphanedRecords(count int) {
	globalManager.orphanedRecords.Set(float64(count))
}

// RecordStoreSaveDuration records a store save duration in milliseconds.
func RecordStoreSaveDuration(durationMs float64) {
	globalManager.storeSaveDuration.Observe(durationMs)
}

// RecordStoreSaveRetry increments the save retry counter.
func RecordStoreSaveRetry() {
	globalManager.storeSaveRetries.Inc()
}

// RecordStoreSaveError increments the save error counter.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// RecordStoreLoadError increments the load error counter.
func RecordStoreLoadError() {
	globalManager.storeLoadErrors.Inc()
}

// UpdateActiveSessions sets the current live session count.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// RecordLoginFailure increments the rejected passcode counter.
func RecordLoginFailure() {
	globalManager.loginFailures.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
