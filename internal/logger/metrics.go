package logger

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ValidationTotal counts validation passes
	ValidationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitcheck_validation_total",
			Help: "Total number of kit validation passes",
		},
		[]string{"source", "result"}, // result: "clean", "warnings", "errors"
	)

	// ValidationDuration measures validation latency including catalog loading
	ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kitcheck_validation_duration_seconds",
			Help:    "Kit validation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// WarningsTotal counts emitted warnings by type and severity
	WarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitcheck_warnings_total",
			Help: "Total number of compatibility warnings produced",
		},
		[]string{"type", "severity"},
	)

	// SuggestionsTotal counts accessory suggestions by match layer
	SuggestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kitcheck_suggestions_total",
			Help: "Total number of accessory suggestions returned",
		},
		[]string{"layer"},
	)

	// DatabaseQueryDuration measures repository latency
	DatabaseQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kitcheck_database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CatalogSize tracks the number of catalog entries
	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kitcheck_catalog_size",
			Help: "Number of equipment specs in the catalog",
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers Prometheus metrics. Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ValidationTotal)
		prometheus.MustRegister(ValidationDuration)
		prometheus.MustRegister(WarningsTotal)
		prometheus.MustRegister(SuggestionsTotal)
		prometheus.MustRegister(DatabaseQueryDuration)
		prometheus.MustRegister(CatalogSize)
	})
}

// MetricsHandler returns HTTP handler for Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
