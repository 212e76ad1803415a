package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// metricsNamespace prefixes every collector of this service.
const metricsNamespace = "game_reviews"

// unmatchedRoute is the path label shared by requests that matched no route.
const unmatchedRoute = "<unmatched>"

// Label sets stay bounded: "path" is the registered route template
// (e.g. /api/reviews/:review_id) or unmatchedRoute, never a raw URL.
var (
	routeLabels  = []string{"method", "path"}
	statusLabels = []string{"method", "path", "status"}

	httpReqs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template and status.",
	}, statusLabels)

	httpLat = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Request latency by route template.",
		// Listings run one aggregated query; anything past 2.5s is an outlier.
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, routeLabels)

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_inflight",
		Help:      "Requests currently being served.",
	})

	// Buckets stop at 1MiB, the request body cap.
	httpRespSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_response_size_bytes",
		Help:      "Response body size by route template.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
	}, routeLabels)

	rateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_rate_limited_total",
		Help:      "Requests rejected with 429, by limiter backend.",
	}, []string{"backend"})
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, rateLimited)
}

// Metrics records count, latency and response size per route template.
// Expose them by mounting promhttp.Handler() on /metrics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInflight.Inc()
		defer httpInflight.Dec()
		start := time.Now()

		c.Next()

		labels := prometheus.Labels{"method": c.Request.Method, "path": metricsPath(c)}
		httpLat.With(labels).Observe(time.Since(start).Seconds())
		// -1 means nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.With(labels).Observe(float64(size))
		}
		labels["status"] = strconv.Itoa(c.Writer.Status())
		httpReqs.With(labels).Inc()
	}
}

// metricsPath is the bounded path label for c.
func metricsPath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return unmatchedRoute
}
