// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "majlis_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "majlis_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedQueryLatency records study hall feed latency by tab and sort.
	FeedQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "majlis_feed_query_latency_seconds",
		Help:    "Study hall feed query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"tab", "sort"})

	// ModerationActions counts admin moderation mutations by action.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "majlis_moderation_actions_total",
		Help: "Total admin moderation actions by action type",
	}, []string{"action"})

	// NotificationFailures counts owner notifications that could not be published.
	NotificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "majlis_notification_failures_total",
		Help: "Total owner notifications that failed to publish",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// ObserveFeedQuery records the latency of one feed computation.
func ObserveFeedQuery(tab, sort string, start time.Time) {
	FeedQueryLatency.WithLabelValues(tab, sort).Observe(time.Since(start).Seconds())
}
