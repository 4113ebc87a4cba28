package routes

import (
	"github.com/address-extractor/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, addressController *controllers.AddressController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Address extraction routes
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/extract", addressController.ExtractAddress)
			addresses.POST("/jobs", addressController.BatchExtract)
			addresses.GET("/jobs/:jobID/status", addressController.GetJobStatus)
			addresses.GET("/jobs/:jobID/results", addressController.GetJobResults)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.GET("/stats", adminController.GetStats)
		}

		// Health check route
		v1.GET("/health", addressController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, addressController *controllers.AddressController) {
	router.GET("/health", addressController.HealthCheck)
	router.GET("/ready", addressController.HealthCheck)
	router.GET("/live", addressController.HealthCheck)
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, addressController *controllers.AddressController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, addressController)
	SetupAPIRoutes(router, addressController, adminController)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
