// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Attendance events counted by RecordEvent.
const (
	EventRegister = "register"
	EventLogin    = "login"
	EventCheckIn  = "check_in"
	EventCheckOut = "check_out"
)

// Outcome labels for RecordEvent.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RequestsTotal counts handled HTTP requests.
var RequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "attendance_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// RequestDuration observes HTTP request latency.
var RequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "attendance_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// Events counts auth and attendance operations by outcome.
var Events = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "attendance_events_total",
		Help: "Total number of attendance and auth events",
	},
	[]string{"event", "outcome"},
)

// NewRegistry returns a registry holding the package metrics plus Go runtime
// and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	RegisterMetrics(reg)
	return reg
}

// RegisterMetrics registers the package metrics with reg. Panics if registration fails.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal, RequestDuration, Events)
}

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per matched route. Unmatched
// paths share one label so arbitrary URLs cannot grow the series count.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordEvent increments the counter for event with the outcome derived from err.
func RecordEvent(event string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	Events.WithLabelValues(event, outcome).Inc()
}
