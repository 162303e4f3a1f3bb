package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionIDKey     = "sessionId"
	sessionCookie    = "dv_session"
	sessionMaxAgeSec = 12 * 60 * 60
)

// Session assigns a stable session ID per admin browser session via cookie.
// A client may also pin one explicitly with the X-Session-Id header, which
// keeps non-cookie API clients (and tests) simple.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Session-Id")
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, sessionMaxAgeSec, "/", "", false, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
