package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docviewer-backend/internal/documents"
	"docviewer-backend/internal/shared/config"
	"docviewer-backend/internal/shared/server/middleware"
	"docviewer-backend/internal/shared/server/respond"
	"docviewer-backend/internal/shared/server/webui"
	"docviewer-backend/internal/viewer"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	ViewerHandler   *viewer.Handler
	DocumentHandler *documents.Handler
	// DatabaseReady reports whether the remote document database was reachable
	// at bootstrap; dev mode may run against in-memory data without it.
	DatabaseReady bool
	// AuditReady reports whether the audit store is backed by Postgres.
	AuditReady bool
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(),
	)

	webui.Register(r)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"ok":       true,
			"database": deps.DatabaseReady,
			"audit":    deps.AuditReady,
		})
	})
	deps.ViewerHandler.RegisterRoutes(api)
	deps.DocumentHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
