package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/home-solutions/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORS),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	api := router.Group("/api/v1")
	{
		api.GET("/healthz", handler.Health)
		api.GET("/categories", handler.Categories)
		api.GET("/providers", handler.SearchProviders)
		api.GET("/providers/featured", handler.FeaturedProviders)
		api.GET("/providers/:id", handler.ProviderDetail)
		api.POST("/classify", handler.Classify)
		api.GET("/classify/trending", handler.TrendingQueries)
		api.GET("/classify/history", handler.ClassificationHistory)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
