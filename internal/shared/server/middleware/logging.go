package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/telemetry"
)

// Logging emits one structured line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": RequestIDFromContext(c),
		}
		if lang := c.Param("lang"); lang != "" {
			fields["lang"] = lang
		}
		if sid := c.Param("id"); sid != "" {
			fields["session_id"] = sid
		}
		if admin := c.GetString(adminSubjectKey); admin != "" {
			fields["admin"] = admin
		}
		telemetry.Info("http.request", fields)
	}
}
