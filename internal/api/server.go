package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with logging and recovery middleware.
func NewRouter(handler *Handler, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	SetupRoutes(router, handler)
	return router
}

// requestLogger records method, path, status and latency per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if logger == nil {
			return
		}
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}
