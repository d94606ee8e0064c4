package http

import (
	"github.com/gin-gonic/gin"

	"github.com/tiendafacil/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		assistant := v1.Group("/assistant")
		{
			assistant.POST("/message", handler.PostMessage)
		}

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.POST("", handler.CreateProduct)
			products.PUT("/:id", handler.UpdateProduct)
			products.DELETE("/:id", handler.DeleteProduct)
			products.POST("/reset", handler.ResetProducts)
			products.POST("/import", handler.ImportProducts)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", handler.RegisterSale)
			sales.POST("/manual", handler.RegisterManualSale)
			sales.GET("/summary", handler.SalesSummary)
			sales.GET("/recent", handler.RecentSales)
		}
	}

	return router
}
