package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moviematch",
			Name:      "queries_total",
			Help:      "Total number of recommendation queries",
		},
		[]string{"surface", "result"}, // result: "hit" / "not_found"
	)

	CatalogEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moviematch",
			Name:      "catalog_entries",
			Help:      "Number of entries in the loaded catalog",
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moviematch",
			Name:      "vocabulary_terms",
			Help:      "Number of genre terms in the similarity index",
		},
	)

	IndexBuildSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moviematch",
			Name:      "index_build_seconds",
			Help:      "Time spent building the similarity matrix",
		},
	)
)

func init() {
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(CatalogEntries)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(IndexBuildSeconds)
}

// ObserveIndex records the size and build time of a freshly built index.
func ObserveIndex(entries, vocabulary int, took time.Duration) {
	CatalogEntries.Set(float64(entries))
	VocabularySize.Set(float64(vocabulary))
	IndexBuildSeconds.Set(took.Seconds())
}

// ObserveQuery counts one query answered on the given surface.
func ObserveQuery(surface string, found bool) {
	result := "hit"
	if !found {
		result = "not_found"
	}
	QueriesTotal.WithLabelValues(surface, result).Inc()
}
