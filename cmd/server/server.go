package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	workorderapp "github.com/maintenance/backend/internal/application/workorder"
	"github.com/maintenance/backend/internal/infrastructure/config"
	"github.com/maintenance/backend/internal/infrastructure/logger"
	"github.com/maintenance/backend/internal/infrastructure/telemetry"
	"github.com/maintenance/backend/internal/interfaces/http/handler"
	"github.com/maintenance/backend/internal/interfaces/http/middleware"
	"github.com/maintenance/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const healthPath = "/health"

// server is the HTTP server plus the background resources its middleware owns
type server struct {
	*http.Server
	limiter *middleware.RateLimiter
}

// release stops middleware background work; call after Shutdown
func (s *server) release() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func newServer(cfg *config.Config, log *zap.Logger, metrics *telemetry.Metrics, documentService *workorderapp.DocumentService) (*server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	metricsPath := cfg.Metrics.Path
	quiet := []string{healthPath, "/"}
	if metrics != nil {
		quiet = append(quiet, metricsPath)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		Filters:     []otelgin.Filter{middleware.SkipPaths(quiet...)},
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log, quiet...))
	engine.Use(middleware.HTTPMetrics(metrics, metricsPath))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: middleware.DefaultCORSConfig().ExposeHeaders,
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	srv := &server{}
	var renderMiddleware []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		srv.limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		renderMiddleware = append(renderMiddleware, middleware.RateLimit(srv.limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET(healthPath, healthHandler)
	engine.GET("/", healthHandler)
	if metrics != nil {
		engine.GET(metricsPath, gin.WrapH(metrics.Handler()))
	}

	workOrderRoutes := handler.WorkOrderRoutes(handler.NewWorkOrderHandler(documentService), renderMiddleware...)
	systemRoutes := handler.SystemRoutes(handler.NewSystemHandler(cfg.App.Name, version))

	r := router.NewRouter(engine)
	r.Register(workOrderRoutes).Register(systemRoutes)
	r.Setup()

	for _, g := range []*router.DomainGroup{workOrderRoutes, systemRoutes} {
		log.Debug("Routes registered",
			zap.String("group", g.Name()),
			zap.String("prefix", r.Prefix()),
			zap.Strings("routes", g.Routes()),
		)
	}

	srv.Server = &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}
	return srv, nil
}

// healthHandler reports liveness; the service has no downstream dependencies
// that must be up to render
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
