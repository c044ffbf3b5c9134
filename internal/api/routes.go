package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, metrics http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/fetch", handler.Fetch)                   // GET  /api/v1/fetch?keyword=pothole&multi=true
		v1.POST("/register", handler.Register)            // POST /api/v1/register
		v1.GET("/all", handler.ListAll)                   // GET  /api/v1/all?limit=50
		v1.GET("/complaints/:id", handler.GetComplaint)   // GET  /api/v1/complaints/:id
		v1.POST("/batch-process", handler.BatchProcess)   // POST /api/v1/batch-process
	}
}
