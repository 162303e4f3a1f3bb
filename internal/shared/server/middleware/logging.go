package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/shared/telemetry"
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
		status := c.Writer.Status()
		reqID := RequestIDFromContext(c)

		sessionID, _ := c.Get(sessionIDKey)
		searchedEmail, _ := c.Get("searchedEmail")
		documentID, _ := c.Get("documentId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":     reqID,
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         status,
			"duration_ms":    float64(latency.Microseconds()) / 1000.0,
			"session_id":     sessionID,
			"searched_email": searchedEmail,
			"document_id":    documentID,
			"client_ip":      c.ClientIP(),
			"user_agent":     c.Request.UserAgent(),
		})
	}
}
