package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maintenance/backend/internal/infrastructure/telemetry"
)

// UnmatchedRoute labels requests that hit no registered route, keeping
// arbitrary paths out of metric labels
const UnmatchedRoute = "unmatched"

// HTTPMetrics records request count, latency and in-flight requests.
// A nil Metrics yields a pass-through middleware.
func HTTPMetrics(metrics *telemetry.Metrics, skip ...string) gin.HandlerFunc {
	if metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		done := metrics.HTTPStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		done(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
