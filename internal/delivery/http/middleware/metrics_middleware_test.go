package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory/config"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_RecordsRouteAndStatus(t *testing.T) {
	m := metrics.New(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}})

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(newDiscardLogger()).HandleHTTPError
	e.Use(NewMetricsMiddleware(m).Process)
	e.GET("/api/orders/:id", func(c echo.Context) error {
		if c.Param("id") == "404" {
			return domainerrors.ErrOrderNotFound
		}

		return c.NoContent(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "404"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/orders/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/orders/:id", "404")), 0)
}
