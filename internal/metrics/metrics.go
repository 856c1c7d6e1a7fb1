package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diljourney_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "diljourney_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIRateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "diljourney_api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	RatingRecalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diljourney_rating_recalculations_total",
			Help: "Venue rating recalculations by outcome",
		},
		[]string{"result"},
	)

	MediaUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diljourney_media_operations_total",
			Help: "Cloudinary uploads and deletions by outcome",
		},
		[]string{"operation", "result"},
	)
)

// RecordAPIRequest records one served request. route is the chi route
// pattern so that ids do not explode label cardinality.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordRatingRecalculation(err error) {
	RatingRecalculations.WithLabelValues(result(err)).Inc()
}

func RecordMediaOperation(operation string, err error) {
	MediaUploads.WithLabelValues(operation, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
