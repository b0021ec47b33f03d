// Package middleware provides HTTP middleware for the work order service.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maintenance/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// Filters skip span creation for matching requests (health probes, scrapes).
	Filters []otelgin.Filter
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "workorder-service",
		Enabled:     true,
	}
}

// SkipPaths builds a filter that drops spans for the given exact paths
func SkipPaths(paths ...string) otelgin.Filter {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skip[p] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := skip[r.URL.Path]
		return !ok
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin. Spans are named after the route pattern.
// Pair it with SpanErrorMarker for request IDs and 5xx status.
func TracingWithConfig(cfg TracingConfig, opts ...otelgin.Option) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	for _, f := range cfg.Filters {
		opts = append(opts, otelgin.WithFilter(f))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanErrorMarker enriches the active span once the handler chain has run.
// It must be registered after Tracing so it executes inside the span.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := c.GetString(logger.GinRequestIDKey); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
		}

		c.Next()

		if !span.IsRecording() {
			return
		}
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("gin.errors", c.Errors.String()))
		}
	}
}
