package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gamedex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"},
	)

	SearchDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gamedex",
			Name:      "search_degraded_total",
			Help:      "Hybrid searches answered lexical-only after a semantic path failure",
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gamedex",
			Name:      "search_candidates",
			Help:      "Size of the filtered candidate set per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDegradedTotal)
	prometheus.MustRegister(SearchCandidates)
	searchMetricsRegistered = true
}
