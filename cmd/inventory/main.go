package main

import (
	"context"
	"log/slog"
	"os"

	"inventory/config"
	"inventory/internal/delivery"
	"inventory/internal/delivery/http"
	"inventory/internal/delivery/http/middleware"
	"inventory/internal/delivery/http/router/handler"
	deliverymiddleware "inventory/internal/delivery/middleware"
	"inventory/internal/domain/service"
	"inventory/internal/infra/auth"
	logs "inventory/internal/infra/log"
	"inventory/internal/infra/mail"
	"inventory/internal/infra/metrics"
	"inventory/internal/infra/persistence/postgres"
	"inventory/internal/usecase/impl"
	"inventory/internal/validation"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			impl.RegisterAdminSeeder,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			validation.New,
			metrics.New,
			func(m *metrics.Metrics) service.MetricsRecorder { return m },
		),
		mail.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewRoleRepository,
			postgres.NewSupplierRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			newTokenService,
		),
	)
}

func newTokenService(cfg *config.Config) (service.TokenService, error) {
	return auth.NewJWTService(cfg)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewSupplierService,
			impl.NewCSVService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewMetricsMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewSupplierHandler,
			handler.NewCSVHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
