package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.Health)

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/generate", handler.Generate)
		apiGroup.POST("/validate", handler.Validate)

		batch := apiGroup.Group("/batch")
		{
			batch.POST("/generate", handler.BatchGenerate)
			batch.POST("/jobs", handler.SubmitBatchJob)
			batch.GET("/jobs/:id", handler.JobProgress)
			batch.POST("/jobs/:id/cancel", handler.CancelJob)
			batch.POST("/export", handler.Export)
		}

		content := apiGroup.Group("/content")
		{
			content.GET("/search", handler.SearchContents)
			content.GET("/:id", handler.GetContent)
			content.DELETE("/:id", handler.DeleteContent)
		}

		apiGroup.GET("/analytics/stats", handler.AnalyticsStats)
	}
}
