package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Trigger labels for materialized transactions
const (
	TriggerSweep  = "sweep"
	TriggerManual = "manual"
)

var (
	// RecurringMaterialized counts transactions spawned from recurring templates
	RecurringMaterialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbook_recurring_materialized_total",
			Help: "Total number of transactions materialized from recurring templates",
		},
		[]string{"trigger"}, // sweep, manual
	)

	// RecurringSweepFailures counts templates or users the sweep could not process
	RecurringSweepFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pocketbook_recurring_sweep_failures_total",
			Help: "Total number of per-item failures during recurring sweeps",
		},
	)

	// RecurringSweepDuration observes how long a full sweep takes
	RecurringSweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pocketbook_recurring_sweep_duration_seconds",
			Help:    "Duration of recurring sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketbook_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pocketbook_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// HTTPMiddleware records request counts and latencies per route template
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			httpRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
