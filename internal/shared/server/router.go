package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/dashboard"
	"taxdocs-backend/internal/documents"
	"taxdocs-backend/internal/intake"
	"taxdocs-backend/internal/shared/config"
	"taxdocs-backend/internal/shared/server/middleware"
	"taxdocs-backend/internal/shared/server/respond"
	"taxdocs-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Construction of the
// handlers themselves lives in bootstrap.
type RouterDeps struct {
	Config           config.Config
	IntakeHandler    *intake.Handler
	DocumentsHandler *documents.Handler
	DashboardHandler *dashboard.Handler
	UsersHandler     *users.Handler
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
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.IntakeHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.DashboardHandler.RegisterRoutes(api)
	deps.UsersHandler.RegisterRoutes(api)

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
