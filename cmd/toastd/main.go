// Command toastd serves the toast board and, when Redis is configured, turns
// pub/sub messages into toasts.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dmitrymomot/toastkit/modules/board"
	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/intake"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/preset"
	"github.com/dmitrymomot/toastkit/pkg/redis"
	"github.com/dmitrymomot/toastkit/pkg/surface"
	"github.com/dmitrymomot/toastkit/pkg/telemetry"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

type appConfig struct {
	Logger    logger.Config
	HTTP      httpserver.Config
	Redis     redis.Config
	Intake    intake.Config
	Board     board.Config
	Presets   preset.Config
	Telemetry telemetry.Config

	SurfaceBuffer int `env:"SURFACE_BUFFER" envDefault:"64"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("toastd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.FromConfig(cfg.Logger),
		logger.WithContextExtractors(logger.RequestIDExtractor, logger.TraceIDExtractor),
	)
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.Logger.Service)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := tel.Shutdown(flushCtx); err != nil {
			log.Warn("telemetry flush failed", logger.Error(err))
		}
	}()

	set, err := preset.FromConfig(cfg.Presets)
	if err != nil {
		return err
	}
	presets := preset.NewRegistry(set)
	if cfg.Presets.File != "" {
		go func() {
			if err := presets.Watch(ctx, cfg.Presets.File, log); err != nil {
				log.Error("presets watcher stopped", logger.Error(err))
			}
		}()
	}

	obs, err := telemetry.NewObserver(tel.Meter())
	if err != nil {
		return err
	}

	hub := surface.NewHub(cfg.SurfaceBuffer, log)
	sched, err := toast.New(surface.NewRenderer(hub),
		toast.WithAnimator(surface.NewAnimator(hub, toast.SystemClock{})),
		toast.WithLogger(log),
		toast.WithObserver(obs.Observe),
	)
	if err != nil {
		return err
	}
	defer sched.Close()

	opts := []board.Option{board.WithLogger(log)}
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, board.WithHealthCheck("redis", redis.Healthcheck(client)))

		consumer, err := intake.NewConsumer(cfg.Intake, sched, presets, log,
			intake.WithTracerProvider(otel.GetTracerProvider()),
		)
		if err != nil {
			return err
		}
		go func() {
			if err := consumer.Listen(ctx, client); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("intake stopped", logger.Error(err))
			}
		}()
	}

	svc := board.NewService(cfg.Board, sched, hub, presets, opts...)
	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(context.Context) error {
			cancel()
			sched.Close()
			return hub.Close()
		}),
	)
	return srv.Run(ctx, svc.Handle())
}
