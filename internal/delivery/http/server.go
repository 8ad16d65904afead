package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"inventory/config"
	"inventory/internal/delivery"
	deliverymiddleware "inventory/internal/delivery/middleware"
	httpmiddleware "inventory/internal/delivery/http/middleware"
	"inventory/internal/delivery/http/router"
	"inventory/internal/domain/lifecycle"
	"inventory/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config            *config.Config
	Logger            *slog.Logger
	Validator         *validation.Validator
	ErrorMiddleware   *httpmiddleware.ErrorMiddleware
	MetricsMiddleware *httpmiddleware.MetricsMiddleware
	RequestID         *deliverymiddleware.RequestIDMiddleware
	RequestLogger     *deliverymiddleware.LoggerMiddleware
	RouterParams      router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

// NewEcho builds the fully routed echo instance without binding a port.
func NewEcho(params HTTPParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Validator = params.Validator
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	timeouts := params.Config.HTTP.Timeouts
	echoServer.Server.ReadTimeout = timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = timeouts.IdleTimeout

	echoServer.Use(params.RequestID.Process)
	if params.Config.Metrics.Enabled {
		echoServer.Use(params.MetricsMiddleware.Process)
	}
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(params.RequestLogger.Handle)
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())
	echoServer.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: params.Config.HTTP.MaxRequestBodySize,
		// Uploads enforce their own limit.
		Skipper: func(c echo.Context) bool {
			return c.Request().Method == http.MethodPost && isCSVImport(c.Request().URL.Path)
		},
	}))

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	return echoServer
}

func isCSVImport(path string) bool {
	return path == "/api/csv/import/products" || path == "/api/csv/import/orders"
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
