package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lunaria/arcana/internal/api/handler"
	"github.com/lunaria/arcana/internal/api/middleware"
	"github.com/lunaria/arcana/internal/config"
	"github.com/lunaria/arcana/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(pipeline *service.Pipeline, cfg *config.Config) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	analyzeHandler := handler.NewAnalyzeHandler(pipeline, cfg.Pipeline.Hybrid)
	deckHandler := handler.NewDeckHandler()

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Analysis
		v1.POST("/analyze", analyzeHandler.Analyze)

		// Catalogs
		v1.GET("/decks", deckHandler.ListDecks)
		v1.GET("/cards", deckHandler.ListCards)
	}

	return r
}
