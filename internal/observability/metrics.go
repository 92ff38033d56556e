package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manavault_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "manavault_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ScryfallRequestLatency records upstream card-database request latency by endpoint and outcome.
	ScryfallRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "manavault_scryfall_request_latency_seconds",
		Help:    "Scryfall API request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "outcome"})

	// DeckValidationRejections counts deck additions rejected by format rules.
	DeckValidationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "manavault_deck_validation_rejections_total",
		Help: "Total number of deck card additions rejected by format validation",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// ObserveScryfallRequest records one upstream request.
func ObserveScryfallRequest(endpoint, outcome string, start time.Time) {
	ScryfallRequestLatency.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
}
