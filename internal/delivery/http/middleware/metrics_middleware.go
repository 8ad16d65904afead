package middleware

import (
	"time"

	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latencies per route.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Process observes the request after the handler and error handler ran.
func (m *MetricsMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// Let the error handler write the response so the real status is recorded.
			c.Error(err)
		}

		// Route templates keep label cardinality bounded; unmatched paths collapse to "unmatched".
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}

		m.metrics.ObserveHTTPRequest(c.Request().Method, path, c.Response().Status, time.Since(start))

		return nil
	}
}
