package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"wanderlust/internal/app"
	"wanderlust/internal/config"
	"wanderlust/internal/handler"
	"wanderlust/internal/middleware"
	"wanderlust/internal/mirror"
	internalRedis "wanderlust/internal/redis"
	"wanderlust/internal/seed"
	"wanderlust/internal/service"
	"wanderlust/internal/storage"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
			nrApp = nil
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize the primary store.
	repos, err := app.NewRepositories(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer repos.Close()
	log.Printf("Connected to %s", cfg.Database.Driver)

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Println("Connected to Redis")
	} else {
		log.Println("Redis disabled: demo state kept in memory, author cache and idempotency off")
	}

	assets, err := storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		log.Fatalf("failed to prepare uploads: %v", err)
	}

	// Wire dependencies.
	server := wireServer(repos, redisClient, assets, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	repos *app.Repositories,
	redisClient *redis.Client,
	assets *storage.DiskStore,
	nrApp *newrelic.Application,
	cfg *config.Config,
) *http.Server {
	// Redis-backed stores fall back to process memory when Redis is off.
	var mirrorStore mirror.Store = mirror.NewMemoryStore()
	var authorCache service.AuthorCache
	if redisClient != nil {
		mirrorStore = internalRedis.NewMirrorStore(redisClient, "mirror:")
		authorCache = internalRedis.NewCacheStore(redisClient)
	}

	// Initialize services.
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	directory := service.NewAuthorDirectory(repos.Users, authorCache)
	normalizer := service.NewNormalizer(repos.Users, repos.Ratings, repos.Comments, directory)
	notificationService := service.NewNotificationService()
	authService := service.NewAuthService(repos.Users, repos.Trips, tokens, assets, directory, cfg.Auth.BcryptCost)
	tripService := service.NewTripService(repos.Trips, repos.Users, repos.Ratings, repos.Comments, normalizer, notificationService)
	gateway := service.NewTripGateway(tripService, seed.Default(), mirror.New(mirrorStore, cfg.Mirror.Key), repos.Users)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, tripService, gateway, cfg.Uploads.MaxBytes)
	tripHandler := handler.NewTripHandler(tripService, gateway)
	engagementHandler := handler.NewEngagementHandler(gateway, tripService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		TripHandler:       tripHandler,
		EngagementHandler: engagementHandler,
		Tokens:            tokens,
		AuthLimiter:       middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
		UploadsDir:        assets.Dir(),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
	}).Handler(router)

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
