package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tourapi/docs"
	"tourapi/internal/config"
	handlers "tourapi/internal/http/handler"
	"tourapi/internal/http/middleware"
	"tourapi/internal/logging"
	tracing "tourapi/internal/otel"
	"tourapi/internal/service"
)

// @title Tour API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger, _ := logging.NewFromConfig(cfg.Timezone, cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger)
	if err != nil {
		logger.Fatal("tracing_init_failed", zap.Error(err))
	}

	// Open the configured tours backend and load the dataset once
	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("tours_backend_open_failed", zap.Error(err))
	}
	defer backend.Close()

	tourSvc, err := service.NewTourService(ctx, backend.Repo, logger)
	if err != nil {
		logger.Fatal("tours_load_failed", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("metrics_register_failed", zap.Error(err))
	}

	appCfg := handlers.AppConfig()
	appCfg.DisableStartupMessage = true
	app := fiber.New(appCfg)

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath || c.Path() == "/healthz"
	})))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(logger))
	app.Use(middleware.Greeting(logger))
	app.Use(middleware.RequestTime(nil))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, backend.Repo, tourSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_started", zap.String("addr", addr), zap.String("tours_backend", cfg.Tours.Backend))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server_start_failed", zap.Error(err))
		}
	case <-ctx.Done():
	}

	logger.Info("server_stopping")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("server_shutdown_failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("tracing_shutdown_failed", zap.Error(err))
	}
}
