// Package middleware holds Echo middleware shared across the HTTP layer.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	issuesRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inspection_issues_recorded_total",
			Help: "Total number of issues recorded, by severity",
		},
		[]string{"severity"},
	)

	flowStepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inspection_flow_steps_total",
			Help: "Total number of guided flow step transitions",
		},
	)
)

// MetricsMiddleware collects HTTP request metrics in Prometheus format.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip metrics endpoint itself to avoid recursion
			if c.Path() == "/metrics" {
				return next(c)
			}

			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// ObserveBus wires domain metrics to inspection events.
func ObserveBus(bus *eventbus.Bus) {
	bus.Subscribe(autoscope.EventIssueAdded, func(args ...any) {
		severity := "unknown"
		if len(args) > 0 {
			if issue, ok := args[0].(autoscope.Issue); ok {
				severity = string(issue.Severity)
			}
		}
		issuesRecordedTotal.WithLabelValues(severity).Inc()
	})

	bus.Subscribe(autoscope.EventFlowStepChanged, func(args ...any) {
		flowStepsTotal.Inc()
	})
}
