package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrivision/agrivision/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:id", handler.GetSession)
		api.PUT("/sessions/:id/language", handler.SetLanguage)
		api.PUT("/sessions/:id/page", handler.SetPage)

		api.POST("/sessions/:id/analysis", handler.AnalyzeImage)
		api.DELETE("/sessions/:id/analysis", handler.ClearImage)
		api.GET("/sessions/:id/image", handler.GetImage)

		api.POST("/sessions/:id/chat", handler.Chat)

		api.POST("/sessions/:id/reports", handler.GenerateReport)
		api.DELETE("/sessions/:id/reports", handler.CloseReport)
		api.GET("/sessions/:id/reports/export", handler.ExportReport)

		api.POST("/sessions/:id/region", handler.AnalyzeRegion)

		api.GET("/features", handler.ListFeatures)
		api.GET("/languages", handler.Languages)
		api.GET("/weather", handler.Weather)
		api.GET("/market/items", handler.MarketItems)
		api.GET("/community/posts", handler.CommunityPosts)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
