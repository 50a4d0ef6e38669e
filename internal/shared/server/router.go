package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/adminauth"
	"portfolio-backend/internal/chat"
	"portfolio-backend/internal/editor"
	"portfolio-backend/internal/pdfexport"
	"portfolio-backend/internal/portfolio"
	"portfolio-backend/internal/services/health"
	"portfolio-backend/internal/shared/config"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	PortfolioHandler *portfolio.Handler
	AuthHandler      *adminauth.Handler
	EditorHandler    *editor.Handler
	ChatHandler      *chat.Handler
	PDFHandler       *pdfexport.Handler
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

	healthSvc := health.NewService()

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})

	if deps.PortfolioHandler != nil {
		deps.PortfolioHandler.RegisterRoutes(api)
	}
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.PDFHandler != nil {
		deps.PDFHandler.RegisterRoutes(api)
	}

	gated := api.Group("")
	gated.Use(middleware.AdminAuth(), middleware.RateLimit(120, 30))
	if deps.PortfolioHandler != nil {
		deps.PortfolioHandler.RegisterAdminRoutes(gated)
	}
	if deps.EditorHandler != nil {
		deps.EditorHandler.RegisterRoutes(gated)
	}

	return r
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
