// Command mailworker consumes queued welcome emails and delivers them through Mailgun.
package main

import (
	"context"
	"log/slog"
	"os"

	"inventory/config"
	"inventory/internal/delivery"
	"inventory/internal/delivery/worker"
	"inventory/internal/delivery/worker/handler"
	"inventory/internal/domain/service"
	logs "inventory/internal/infra/log"
	"inventory/internal/infra/mail"
	"inventory/internal/infra/metrics"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			metrics.New,
			func(m *metrics.Metrics) service.MetricsRecorder { return m },
			mail.NewWorkerSender,
			handler.NewEmailHandler,
		),
		fx.Provide(
			fx.Annotate(
				worker.NewConsumer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
