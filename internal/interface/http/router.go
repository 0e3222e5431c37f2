package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luwei/smart-travel/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/weather/current", handler.CurrentWeather)
		api.GET("/weather/forecast", handler.WeatherForecast)
		api.POST("/outfit/recommendations", handler.RecommendOutfit)
		api.POST("/routes/plan", handler.PlanRoute)
		api.GET("/geo/geocode", handler.Geocode)
		api.GET("/geo/search", handler.SearchPlaces)
		api.POST("/travel/plan", handler.CreateTravelPlan)
		api.POST("/favorites/routes", handler.SaveFavoriteRoute)
		api.GET("/favorites/routes", handler.ListFavoriteRoutes)
		api.DELETE("/favorites/routes/:id", handler.DeleteFavoriteRoute)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
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
