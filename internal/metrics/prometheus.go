package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChatTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floatchat_chat_total",
			Help: "Total chat requests processed",
		},
		[]string{"intent", "status"},
	)

	ChatDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floatchat_chat_duration_seconds",
			Help:    "Chat pipeline duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)

	IntentClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floatchat_intent_classified_total",
			Help: "Queries classified per intent",
		},
		[]string{"intent"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floatchat_search_duration_seconds",
			Help:    "Search backend call duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "floatchat_search_results_returned",
			Help:    "Results returned per search after filtering",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	SearchResultsFiltered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "floatchat_search_results_filtered_total",
			Help: "Results dropped by the domain deny-list",
		},
	)

	SearchBackendFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "floatchat_search_backend_failures_total",
			Help: "Search backend failures that degraded to empty results",
		},
		[]string{"reason"},
	)

	SummaryFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "floatchat_summary_fallbacks_total",
			Help: "LLM summaries that fell back to the template summary",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "floatchat_cache_hits_total",
			Help: "Chat response cache hits",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "floatchat_cache_misses_total",
			Help: "Chat response cache misses",
		},
	)
)

func Init() {
	prometheus.MustRegister(ChatTotal)
	prometheus.MustRegister(ChatDuration)
	prometheus.MustRegister(IntentClassified)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(SearchResultsFiltered)
	prometheus.MustRegister(SearchBackendFailures)
	prometheus.MustRegister(SummaryFallbacks)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
