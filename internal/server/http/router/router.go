package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/conzooming/mealsub/internal/server/http/handlers"
	"github.com/conzooming/mealsub/internal/server/http/middleware"
)

// HealthChecker reports readiness of the service's own dependencies.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, health HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/health", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mealPlanHandler := handlers.NewMealPlanHandler(facade)
	subscriptionHandler := handlers.NewSubscriptionHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	trackingHandler := handlers.NewTrackingHandler(facade)
	proxyHandler := handlers.NewProxyHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(facade))

	api.GET("/meal-plans", mealPlanHandler.List)
	api.GET("/meal-plans/current", mealPlanHandler.Current)
	api.POST("/meal-plans", mealPlanHandler.Create)
	api.POST("/meal-plans/create", mealPlanHandler.Create)
	api.POST("/create-health-profile", mealPlanHandler.CreateHealthProfile)

	api.GET("/subscription/draft", subscriptionHandler.Get)
	api.PUT("/subscription/draft", subscriptionHandler.Start)
	api.DELETE("/subscription/draft", subscriptionHandler.Abandon)
	api.POST("/subscription/draft/frequency", subscriptionHandler.SetFrequency)
	api.DELETE("/subscription/draft/meals", subscriptionHandler.RemoveMeal)
	api.GET("/subscription/summary", checkoutHandler.Summary)
	api.POST("/subscriptions/checkout", checkoutHandler.Submit)

	api.POST("/orders/:ref/track", trackingHandler.Track)
	api.GET("/orders/:ref/timeline", trackingHandler.Timeline)

	api.GET("/addresses", proxyHandler.Addresses)
	api.GET("/wallet/balance", proxyHandler.WalletBalance)
	api.Any("/proxy/*path", proxyHandler.PassThrough)

	return engine
}
