package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/telemetry"
)

// Context keys handlers set for the request log line.
const (
	PriorityKey = "triagePriority"
	ScoreKey    = "triageScore"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if priority, ok := c.Get(PriorityKey); ok {
			fields["priority"] = priority
		}
		if score, ok := c.Get(ScoreKey); ok {
			fields["score"] = score
		}
		telemetry.Info("request.complete", fields)
	}
}
