package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/samirrijal/trailboard/internal/adapters/http"
	"github.com/samirrijal/trailboard/internal/pkg/config"
	"github.com/samirrijal/trailboard/internal/pkg/logging"
	"github.com/samirrijal/trailboard/internal/pkg/telemetry"
	"github.com/samirrijal/trailboard/internal/view"
	"github.com/samirrijal/trailboard/internal/wiring"
)

var version = "dev"

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load("trailboard-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Dataset source
	source, closeSource, err := wiring.OpenSource(ctx, cfg)
	if err != nil {
		log.Fatalf("source: %v", err)
	}
	defer closeSource()
	if err := source.Ping(ctx); err != nil {
		slog.Warn("dataset source not ready", "kind", cfg.Source.Kind, "error", err)
	}

	// Cache
	cache, err := wiring.OpenCache(cfg)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else if cache != nil {
		defer cache.Close()
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	deps := &http.Dependencies{
		Dashboard: wiring.NewDashboard(cfg, source, cache),
		Renderer:  renderer,
		Page: http.PageOptions{
			Title:           cfg.Dashboard.Title,
			CirclePackTitle: cfg.Dashboard.CirclePackTitle,
		},
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
		RateLimit:      cfg.Server.RateLimit,
		Version:        version,
	}
	if cache != nil {
		deps.Cache = cache
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Trailboard",
	})
	app.Use(recover.New())

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("dashboard server starting", "addr", addr, "source", cfg.Source.Kind)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
