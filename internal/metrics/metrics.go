// Package metrics holds the Prometheus collectors of the API client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh outcomes.
const (
	RefreshSuccess = "success"
	RefreshFailure = "failure"
)

var (
	ClientRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumkeeper_client_requests_total",
		Help: "Requests sent to the forum backend, by method and status code",
	}, []string{"method", "code"})

	ClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forumkeeper_client_request_duration_seconds",
		Help:    "Round-trip time of requests to the forum backend",
		Buckets: prometheus.ExponentialBuckets(0.01, 2.0, 10), // 10ms to ~5s
	}, []string{"method"})

	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumkeeper_client_token_refresh_total",
		Help: "Access token refresh attempts, by result",
	}, []string{"result"})

	RequestRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forumkeeper_client_request_retries_total",
		Help: "Requests re-issued after a successful token refresh",
	})
)

// ObserveRequest records one round trip. code is 0 for transport errors.
func ObserveRequest(method string, code int, elapsed time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	ClientRequests.WithLabelValues(method, label).Inc()
	ClientRequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
