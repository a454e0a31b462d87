// Package metrics holds the Prometheus collectors for the activity log
// service. Collectors register against the default registry at init and are
// exposed on GET /metrics when METRICS_ENABLED is true.
//
// HTTP metrics are labelled by Echo route template (c.Path()), never the raw
// URL, so campaign and log IDs do not blow up label cardinality.
package metrics

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPPanicsTotal counts handler panics turned into 500s by Recovery.
	HTTPPanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_total",
			Help: "Total number of recovered handler panics, by route template.",
		},
		[]string{"path"},
	)
)

var (
	// ClassifiedTotal counts log lines run through the classifier, by category.
	ClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activitylog_classified_total",
			Help: "Total number of log entries classified, by category.",
		},
		[]string{"category"},
	)

	// IngestedTotal counts log lines accepted by the ingest endpoint.
	IngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activitylog_ingested_total",
			Help: "Total number of log entries accepted for storage.",
		},
	)

	// CampaignCacheTotal counts campaign snapshot cache lookups by result
	// ("hit", "miss", "error").
	CampaignCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activitylog_campaign_cache_total",
			Help: "Campaign snapshot cache lookups, by result.",
		},
		[]string{"result"},
	)

	DBOpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "activitylog_db_open_connections",
			Help: "Number of open connections in the MariaDB pool.",
		},
	)
)

// StartDBStatsCollector polls db.Stats() every interval and updates
// DBOpenConnections until stop is closed.
func StartDBStatsCollector(db *sql.DB, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				DBOpenConnections.Set(float64(db.Stats().OpenConnections))
			case <-stop:
				slog.Debug("db stats collector stopped")
				return
			}
		}
	}()
}
