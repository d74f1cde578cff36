package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grec_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grec_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	recommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grec_recommendations_total",
			Help: "Recommendation evaluations by outcome",
		},
		[]string{"outcome"},
	)

	recommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grec_recommendation_result_size",
			Help:    "Number of plans returned per matched recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
	)
)

// RecordHTTPRequest updates the request counter and latency histogram.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordRecommendation tracks one evaluation's outcome and result size.
func RecordRecommendation(matched bool, results int) {
	outcome := "matched"
	if !matched {
		outcome = "no_match"
	}
	recommendationsTotal.WithLabelValues(outcome).Inc()
	if matched {
		recommendationResultSize.Observe(float64(results))
	}
}
