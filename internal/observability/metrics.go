package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_records_total",
			Help: "Source records processed, by outcome",
		},
		[]string{"outcome"},
	)

	ExtractionPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_extraction_passes_total",
			Help: "Extraction passes run, by pass number",
		},
		[]string{"pass"},
	)

	ExtractionQuality = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrich_extraction_quality",
			Help:    "Quality score of the final extraction attempt",
			Buckets: []float64{0, 25, 50, 75, 100},
		},
	)

	FeaturesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "enrich_features_generated_total",
			Help: "Features written to the store",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RecordsTotal, ExtractionPassesTotal, ExtractionQuality, FeaturesGenerated)
	})
}

// Start registers the collectors and serves /metrics on port in the
// background. An empty port only registers.
func Start(port string) {
	Register()
	if port == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, mux)
}
