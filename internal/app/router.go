package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"hailsim/internal/handler"
	"hailsim/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	RideHandler    *handler.RideHandler
	DriverHandler  *handler.DriverHandler
	MapViewHandler *handler.MapViewHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.TransactionContext())
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", deps.AuthHandler.Signup)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
			auth.GET("/session", deps.AuthHandler.Session)
		}

		// Passenger routes.
		v1.POST("/estimate", deps.RideHandler.Estimate)
		ride := v1.Group("/ride")
		{
			ride.GET("", deps.RideHandler.Get)
			ride.POST("/book", deps.RideHandler.Book)
			ride.POST("/payment-method", deps.RideHandler.SelectPaymentMethod)
			ride.POST("/pay", deps.RideHandler.Pay)
			ride.POST("/cancel", deps.RideHandler.Cancel)
			ride.POST("/finish", deps.RideHandler.Finish)
			ride.POST("/feedback", deps.RideHandler.Feedback)
		}

		// Driver routes.
		driver := v1.Group("/driver")
		{
			driver.GET("", deps.DriverHandler.Get)
			driver.GET("/events", deps.DriverHandler.Events)
			driver.POST("/online", deps.DriverHandler.Online)
			driver.POST("/offline", deps.DriverHandler.Offline)
			driver.POST("/accept", deps.DriverHandler.Accept)
			driver.POST("/reject", deps.DriverHandler.Reject)
		}

		// Map widget payload.
		v1.GET("/mapview", deps.MapViewHandler.Get)
	}

	return router
}
