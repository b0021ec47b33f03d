package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	workorderapp "github.com/maintenance/backend/internal/application/workorder"
	"github.com/maintenance/backend/internal/infrastructure/config"
	"github.com/maintenance/backend/internal/infrastructure/logger"
	"github.com/maintenance/backend/internal/infrastructure/printing"
	"github.com/maintenance/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromConfig(cfg))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting work order service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.ConfigFrom(cfg.Telemetry, version), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics()
	}

	logo, err := printing.NewLogoProvider(cfg, log.Named("logo"))
	if err != nil {
		log.Fatal("Failed to initialize logo provider", zap.Error(err))
	}
	rendererCfg, err := printing.RendererConfigFrom(cfg.Render, logo, log.Named("renderer"))
	if err != nil {
		log.Fatal("Invalid render configuration", zap.Error(err))
	}
	renderer, err := printing.NewLayoutRenderer(rendererCfg)
	if err != nil {
		log.Fatal("Failed to initialize renderer", zap.Error(err))
	}
	log.Info("Renderer ready",
		zap.String("paper_size", rendererCfg.PaperSize.String()),
		zap.String("orientation", rendererCfg.Orientation.String()),
		zap.String("logo_source", cfg.Render.LogoSource),
	)

	documentService := workorderapp.NewDocumentService(renderer, metrics, log)

	srv, err := newServer(cfg, log, metrics, documentService)
	if err != nil {
		log.Fatal("Failed to build HTTP server", zap.Error(err))
	}
	defer srv.release()

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
