package router

import (
	"github.com/gin-gonic/gin"

	"github.com/luxonlabs/luxon-tms/internal/handler"
	"github.com/luxonlabs/luxon-tms/internal/middleware"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier port.TokenVerifier,
	allowedOrigins []string,
	loadH *handler.LoadHandler,
	exportH *handler.ExportHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require a valid IdP token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))

	// Load routes
	loads := protected.Group("/loads")
	loads.POST("/import", loadH.Import)
	loads.GET("", loadH.List)
	loads.GET("/export", exportH.Export)
	loads.GET("/:id", loadH.GetByID)
	loads.PATCH("/:id/status", loadH.UpdateStatus)
	loads.PATCH("/:id/rate", loadH.UpdateRate)
	loads.DELETE("/:id", loadH.Delete)
	loads.POST("/:id/invoice", loadH.SendInvoice)

	// File routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", fileH.Delete)

	return r
}
