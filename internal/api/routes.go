package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	// Health and metrics
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metricsHandler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Classification endpoints
		classify := v1.Group("/classify")
		{
			classify.POST("", handler.Classify)                           // POST /api/v1/classify
			classify.POST("/batch", handler.ClassifyBatch)                // POST /api/v1/classify/batch
			classify.GET("/:content_id", handler.GetClassificationResult) // GET /api/v1/classify/:content_id
		}

		// Taxonomy browsing endpoints
		taxonomy := v1.Group("/taxonomy")
		{
			taxonomy.GET("/categories", handler.ListCategories)                     // GET /api/v1/taxonomy/categories
			taxonomy.GET("/categories/:id/subcategories", handler.GetSubcategories) // GET /api/v1/taxonomy/categories/:id/subcategories
		}

		// History and statistics endpoints
		v1.GET("/history", handler.ListHistory) // GET /api/v1/history
		v1.GET("/stats", handler.GetStats)      // GET /api/v1/stats
	}
}
