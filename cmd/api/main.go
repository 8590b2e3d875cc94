package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sim-feed/user-service/internal/api"
	"github.com/sim-feed/user-service/internal/auth"
	"github.com/sim-feed/user-service/internal/awsparams"
	"github.com/sim-feed/user-service/internal/chats"
	"github.com/sim-feed/user-service/internal/config"
	"github.com/sim-feed/user-service/internal/follows"
	"github.com/sim-feed/user-service/internal/log"
	"github.com/sim-feed/user-service/internal/metrics"
	"github.com/sim-feed/user-service/internal/model"
	"github.com/sim-feed/user-service/internal/personas"
	"github.com/sim-feed/user-service/internal/posts"
	"github.com/sim-feed/user-service/internal/store"
	"github.com/sim-feed/user-service/internal/users"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := log.NewSugar(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Infow("Starting Sim-Feed user service",
		"env", cfg.Env,
		"addr", cfg.HTTPAddr,
		"version", "v1.0.0",
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Production secrets live in Parameter Store; everywhere else the env
	// values stand as-is.
	if cfg.Env == "prod" {
		params, err := awsparams.New(ctx)
		if err != nil {
			logger.Fatalw("Failed to create Parameter Store client", "error", err)
		}
		if err := cfg.ApplySecrets(ctx, params); err != nil {
			logger.Fatalw("Failed to load secrets from Parameter Store", "error", err)
		}
		logger.Infow("Secrets loaded from Parameter Store")
	}

	// Setup metrics
	metricsObj, metricsHandler, err := metrics.Setup("user-service")
	if err != nil {
		logger.Fatalw("Failed to setup metrics", "error", err)
	}

	// Connect database and run schema migration
	db, err := gorm.Open(postgres.Open(cfg.Database.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	if err := model.Migrate(db); err != nil {
		logger.Fatalw("Failed to migrate database schema", "error", err)
	}
	logger.Infow("Database initialized")

	// Setup Redis profile cache. The cache is an optimization; an
	// unreachable Redis degrades to uncached reads instead of failing boot.
	var profileCache users.ProfileCache
	cache, err := store.NewCache(cfg.Cache.RedisAddr, logger, metricsObj)
	if err != nil {
		logger.Warnw("Profile cache disabled", "error", err)
	} else if err := cache.Ping(ctx); err != nil {
		logger.Warnw("Profile cache unreachable; running without it", "error", err)
		cache.Close()
	} else {
		profileCache = cache
		defer cache.Close()
		logger.Infow("Cache connection established")
	}

	// Setup services
	userSvc := users.NewService(users.NewStore(db), profileCache, cfg.Cache.UserProfileTTL, logger)
	personaSvc := personas.NewService(personas.NewStore(db))
	postSvc := posts.NewService(posts.NewStore(db), userSvc, logger)
	followSvc := follows.NewService(follows.NewStore(db), userSvc, personaSvc)
	chatSvc := chats.NewService(chats.NewStore(db), userSvc, personaSvc)

	// Setup API handler and middleware
	handler := api.NewHandler(userSvc, personaSvc, postSvc, followSvc, chatSvc, cfg, logger)
	middleware := api.NewMiddleware(logger, metricsObj)
	verifier := auth.NewClerkVerifier(cfg.Clerk.SecretKey)
	authMiddleware := auth.NewMiddleware(verifier, logger, metricsObj)

	router := handler.Routes(middleware, authMiddleware)

	logger.Infow("CORS configured", "allowed_origins", cfg.Security.CORSAllowedOrigins)

	// Add metrics endpoint
	router.Handle("/metrics", metricsHandler)

	// Setup HTTP server
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	serverErrors := make(chan error, 1)
	go func() {
		logger.Infow("API server starting", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatalw("Server startup failed", "error", err)
	case sig := <-shutdown:
		logger.Infow("Shutdown signal received", "signal", sig.String())

		// Give outstanding requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("Graceful shutdown failed", "error", err)
			server.Close()
		}

		logger.Infow("Server stopped")
	}
}
