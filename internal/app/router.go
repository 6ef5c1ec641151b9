package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"wanderlust/internal/handler"
	"wanderlust/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	TripHandler       *handler.TripHandler
	EngagementHandler *handler.EngagementHandler
	Tokens            middleware.TokenVerifier
	AuthLimiter       *middleware.RateLimiter // optional
	RedisClient       *redis.Client           // optional, enables idempotent replays
	NewRelicApp       *newrelic.Application   // optional
	UploadsDir        string                  // served under /uploads when set
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	required := middleware.Authenticate(deps.Tokens)
	optional := middleware.OptionalAuth(deps.Tokens)
	idempotent := middleware.IdempotencyMiddleware(deps.RedisClient)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.UploadsDir != "" {
		router.Static("/uploads", deps.UploadsDir)
	}

	api := router.Group("/api")
	{
		// Auth routes.
		auth := api.Group("/auth")
		if deps.AuthLimiter != nil {
			auth.Use(deps.AuthLimiter.Middleware())
		}
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.GET("/me", required, deps.AuthHandler.Me)
		}

		// User routes.
		users := api.Group("/users")
		{
			users.PATCH("/me", required, idempotent, deps.UserHandler.UpdateMe)
			users.POST("/me/avatar", required, deps.UserHandler.UploadAvatar)
			users.GET("/me/saved-trips", required, deps.UserHandler.SavedTrips)
			users.GET("/:id", deps.UserHandler.GetUser)
			users.GET("/:id/trips", optional, deps.UserHandler.UserTrips)
		}

		// Trip routes. Engagement routes take optional auth so demo trips can
		// answer anonymous callers themselves.
		trips := api.Group("/trips")
		{
			trips.GET("", optional, deps.TripHandler.List)
			trips.GET("/:id", optional, deps.TripHandler.Get)
			trips.POST("", required, idempotent, deps.TripHandler.Create)
			trips.PATCH("/:id", required, idempotent, deps.TripHandler.Update)
			trips.DELETE("/:id", required, deps.TripHandler.Delete)
			trips.POST("/:id/stops", required, idempotent, deps.TripHandler.AddStop)
			trips.DELETE("/:id/stops/:stopId", required, deps.TripHandler.RemoveStop)

			trips.POST("/:id/ratings", optional, idempotent, deps.EngagementHandler.Rate)
			trips.POST("/:id/comments", optional, idempotent, deps.EngagementHandler.Comment)
			trips.POST("/:id/like", optional, idempotent, deps.EngagementHandler.Like)
			trips.POST("/:id/save", optional, idempotent, deps.EngagementHandler.Save)
			trips.POST("/:id/share", idempotent, deps.EngagementHandler.Share)
		}

		api.DELETE("/ratings/:id", required, deps.EngagementHandler.DeleteRating)
		api.GET("/demo-trips", optional, deps.TripHandler.ListDemo)
	}

	return router
}
