package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	candidatesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genius_candidates_created_total",
		Help: "Total candidates created",
	})
	trackingCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genius_tracking_created_total",
		Help: "Total tracking records created",
	})
	trackingCodeCollisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genius_tracking_code_collisions_total",
		Help: "Generated tracking codes rejected because they already existed",
	}, []string{"scope"})
	publicLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genius_public_lookups_total",
		Help: "Public tracking lookups by outcome",
	}, []string{"outcome"})
	adminLoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "genius_admin_logins_total",
		Help: "Admin sign-in attempts by outcome",
	}, []string{"outcome"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "genius_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route", "status"})
)

// IncCandidatesCreated increments the candidate creation counter.
func IncCandidatesCreated() {
	candidatesCreatedTotal.Inc()
}

// IncTrackingCreated increments the tracking creation counter.
func IncTrackingCreated() {
	trackingCreatedTotal.Inc()
}

// IncCodeCollision records a tracking code collision for the given scope (candidates or tracking).
func IncCodeCollision(scope string) {
	trackingCodeCollisionsTotal.WithLabelValues(scope).Inc()
}

// IncPublicLookup records a public lookup outcome (found, not_found, error).
func IncPublicLookup(outcome string) {
	publicLookupsTotal.WithLabelValues(outcome).Inc()
}

// IncAdminLogin records a sign-in outcome (success, invalid, error).
func IncAdminLogin(outcome string) {
	adminLoginsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one served request.
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(float64(d.Microseconds()) / 1000.0)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
