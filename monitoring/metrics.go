package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_verifications_total",
			Help: "Total verification verdicts by status",
		},
		[]string{"status"},
	)

	verificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticket_verification_duration_seconds",
			Help:    "End-to-end duration of verification calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	providerFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "official_ticket_fetches_total",
			Help: "Official ticket reference fetches by source and outcome",
		},
		[]string{"source", "status"},
	)

	providerFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "official_ticket_fallbacks_total",
			Help: "Times the resilient provider fell back to the static set",
		},
	)

	referenceCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "official_ticket_cache_results_total",
			Help: "Reference cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordVerification(status string, duration time.Duration) {
	verificationsTotal.WithLabelValues(status).Inc()
	verificationDuration.Observe(duration.Seconds())
}

func RecordProviderFetch(source, status string) {
	providerFetches.WithLabelValues(source, status).Inc()
}

func RecordProviderFallback() {
	providerFallbacks.Inc()
}

func RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	referenceCacheResults.WithLabelValues(result).Inc()
}
