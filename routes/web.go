package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Address Extractor Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Address Extractor API v1",
				"endpoints": map[string]string{
					"extract":     "POST /v1/addresses/extract",
					"batch":       "POST /v1/addresses/jobs",
					"job_status":  "GET /v1/addresses/jobs/:jobID/status",
					"job_results": "GET /v1/addresses/jobs/:jobID/results",
					"health":      "GET /v1/health",
				},
			})
		})
	}
}
