package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/internal/transport/http/middleware"
)

// NewRouter wires the REST endpoints. ws is mounted at /ws when non-nil.
func NewRouter(h *GameHandler, allowedOrigins []string, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/analyze", h.Analyze)

		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSession)
		api.POST("/sessions/:id/moves", h.Move)
		api.POST("/sessions/:id/ai-move", h.AIMove)
		api.POST("/sessions/:id/reset", h.Reset)
		api.DELETE("/sessions/:id", h.DeleteSession)
	}

	if ws != nil {
		router.GET("/ws", ws)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("[HTTP] Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
