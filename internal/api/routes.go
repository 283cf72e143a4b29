package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(handlers.logger.Writer()), gin.Recovery())

	// Add CORS middleware
	router.Use(corsMiddleware())

	reports := router.Group("/reports")
	{
		reports.GET("/activity", handlers.DailyActivityHandler)
	}
	router.GET("/jobs", handlers.ListJobsHandler)

	// Health check endpoint
	router.GET("/health", handlers.HealthHandler)

	return router
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
