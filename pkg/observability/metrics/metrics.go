// Package metrics exposes Prometheus instrumentation for the detection
// pipeline. Metrics are registered at package init via promauto and updated
// through the Record* helpers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for purgo_analysis_requests_total.
const (
	OutcomeLexicalHit        = "lexical_hit"
	OutcomeContextualAbusive = "contextual_abusive"
	OutcomeContextualNeutral = "contextual_neutral"
	OutcomeValidationError   = "validation_error"
	OutcomeClassifierError   = "classifier_error"
)

var (
	analysisRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purgo_analysis_requests_total",
			Help: "Total analysis requests by outcome.",
		},
		[]string{"outcome"},
	)

	stageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "purgo_stage_latency_seconds",
			Help:    "Per-stage latency of the detection pipeline.",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"stage"},
	)

	lexicalMatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purgo_lexical_matches_total",
			Help: "Total terms matched by the lexical stage.",
		},
	)

	contextualConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purgo_contextual_confidence",
			Help:    "Confidence reported by the contextual classifier.",
			Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
		},
	)
)

// RecordAnalysisRequest records one completed analysis request with its outcome.
func RecordAnalysisRequest(outcome string) {
	analysisRequests.WithLabelValues(outcome).Inc()
}

// RecordStageLatency records the latency of a pipeline stage ("lexical" or
// "contextual") in seconds.
func RecordStageLatency(stage string, seconds float64) {
	stageLatency.WithLabelValues(stage).Observe(seconds)
}

// RecordLexicalMatches records the number of terms the lexical stage matched.
func RecordLexicalMatches(count int) {
	lexicalMatches.Add(float64(count))
}

// RecordContextualConfidence records the confidence of a contextual verdict.
func RecordContextualConfidence(confidence float64) {
	contextualConfidence.Observe(confidence)
}
