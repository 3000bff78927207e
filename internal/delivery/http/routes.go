package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/productlens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		analysis := v1.Group("/analysis")
		{
			analysis.POST("/sentiment", handler.AnalyzeSentiment)
			analysis.POST("/performance", handler.AnalyzePerformance)
			analysis.POST("/market-trends", handler.MarketTrends)
		}

		competitors := v1.Group("/competitors")
		{
			competitors.POST("/analyze", handler.AnalyzeCompetitors)
			competitors.POST("/compare", handler.CompareProducts)
			competitors.POST("/market-share", handler.MarketShare)
			competitors.GET("/:id", handler.GetCompetitor)
		}

		environmental := v1.Group("/environmental")
		{
			environmental.POST("/analyze-hazards", handler.AnalyzeHazards)
			environmental.POST("/compare-products", handler.CompareHazards)
			environmental.GET("/compliance-checklist", handler.ComplianceChecklist)
		}

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.POST("", handler.CreateProduct)
			products.GET("/search", handler.SearchProducts)
			products.GET("/:id", handler.GetProduct)
			products.PUT("/:id", handler.UpdateProduct)
			products.DELETE("/:id", handler.DeleteProduct)
			products.GET("/:id/analysis", handler.AnalyzeProduct)
		}
	}

	return router
}
