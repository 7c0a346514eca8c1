// Package metrics holds the Prometheus collectors of the feed API. All of
// them register on the default registry and are served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_api_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Store
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_store_operation_duration_seconds",
			Help:    "Duration of service-level store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_store_operation_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	// Domain
	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_like_toggles_total",
			Help: "Total number of like toggles by resulting action",
		},
		[]string{"action"},
	)

	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed pages served",
		},
		[]string{"personalized"},
	)

	FeedPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_page_posts",
			Help:    "Number of posts returned per feed page",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
	)

	PostsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	UsersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_users_created_total",
			Help: "Total number of users created",
		},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

func RecordLikeToggle(action string) {
	LikeTogglesTotal.WithLabelValues(action).Inc()
}

func RecordFeedPage(personalized bool, posts int) {
	FeedRequestsTotal.WithLabelValues(strconv.FormatBool(personalized)).Inc()
	FeedPageSize.Observe(float64(posts))
}
