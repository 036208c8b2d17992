package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"orderflow/cmd"
	_ "orderflow/docs"
	httpin "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the change feed consumer and scheduled jobs",
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), ctx)
		},
	}
}

func runServe(ctx context.Context, cc *commandContext) error {
	cfg, err := cc.config()
	if err != nil {
		return err
	}
	logger := cc.log()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ExporterURL: cfg.OTELExporterURL,
		ServiceName: "orderflow",
		Environment: cfg.Environment,
		SampleRate:  1,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		_ = shutdownTracing(context.WithoutCancel(ctx))
	}()

	db, err := cc.database()
	if err != nil {
		return err
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		return err
	}
	if cfg.ChangeFeed == cmd.ChangeFeedPGListen {
		if err = postgres.InstallChangeTrigger(ctx, db); err != nil {
			return err
		}
	}

	root, err := cc.compositionRoot(ctx)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	consumer, err := root.CreateChangeConsumer()
	if err != nil {
		return fmt.Errorf("create change consumer: %w", err)
	}
	consumerDone := make(chan error, 1)
	if consumer != nil {
		go func() { consumerDone <- consumer.Run(ctx) }()
	}

	e, err := newEcho(cfg, root, logger)
	if err != nil {
		return err
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()
	logger.Info("Server started", "port", cfg.HTTPPort, "change_feed", cfg.ChangeFeed)

	select {
	case <-ctx.Done():
	case err = <-serverDone:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case err = <-consumerDone:
		if err != nil {
			return fmt.Errorf("change consumer stopped: %w", err)
		}
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(cfg cmd.Config, root *cmd.CompositionRoot, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelDebug
			if v.Status >= http.StatusInternalServerError || v.Error != nil {
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	l, err := httpin.NewLimiter(cfg.TokenRegisterLimit, root.RedisClient())
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(httpin.Handlers{
		Board:            root.CreateGetStageBoardQueryHandler(),
		Group:            root.CreateGetOrderGroupQueryHandler(),
		CreateOrder:      root.CreateCreateOrderCommandHandler(),
		UpdateOrder:      root.CreateUpdateOrderCommandHandler(),
		RegisterToken:    root.CreateRegisterTokenCommandHandler(),
		SendNotification: root.CreateSendNotificationCommandHandler(),
		Dispatch:         root.Dispatcher(),
	}, cfg.WebhookSecret, logger)
	server.RegisterRoutes(e, httpin.RateLimit(l))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(root.Registry(), promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
