package monitoring

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Catalog metrics
	TotalGames = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_games_total",
			Help: "Number of games in the catalog",
		},
	)

	TotalComments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_comments_total",
			Help: "Number of comments in the catalog",
		},
	)

	TotalRatings = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_ratings_total",
			Help: "Number of ratings in the catalog",
		},
	)

	TotalPlays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_plays_total",
			Help: "Number of recorded play actions",
		},
	)
)

// Register adds all collectors to the default registry.
func Register() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		TotalGames,
		TotalComments,
		TotalRatings,
		TotalPlays,
	)
}

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusLabel(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes the prometheus scrape endpoint.
func MetricsHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
