package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"giftcases-rest-api/internal/cache"
	"giftcases-rest-api/internal/config"
	"giftcases-rest-api/internal/handler"
	"giftcases-rest-api/internal/middleware"
	"giftcases-rest-api/internal/repository"
	"giftcases-rest-api/internal/router"
	"giftcases-rest-api/internal/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting GiftCases API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize store based on config
	var store repository.Store
	var err error
	switch cfg.Store.Type {
	case "mysql":
		store, err = repository.NewMySQLStore(cfg.Store.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		log.Println("MySQL store initialized")
	case "postgres", "postgresql":
		store, err = repository.NewPostgresStore(cfg.Store.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		log.Println("PostgreSQL store initialized")
	case "memory":
		store = repository.NewMemoryStore()
		log.Println("In-memory store initialized (data will not survive restarts)")
	default: // sqlite
		if err := os.MkdirAll("./data", 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		store, err = repository.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		log.Println("SQLite store initialized")
	}
	defer store.Close()

	// Initialize leaderboard cache
	var leaderCache cache.Cache
	if cfg.Cache.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		redisCache, err := cache.NewRedisCache(redisClient, "")
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			leaderCache = cache.NewMemoryCache()
		} else {
			leaderCache = redisCache
			log.Println("Redis leaderboard cache initialized")
		}
	} else {
		leaderCache = cache.NewMemoryCache()
		log.Println("Memory leaderboard cache initialized")
	}

	// Initialize services
	ledger := service.NewLedger(cfg.Game.DailyBonus)
	resolver := service.NewResolver(service.DefaultCatalog(), ledger)
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gameService := service.NewGameService(
		store,
		leaderCache,
		ledger,
		resolver,
		service.NewBcryptHasher(),
		service.GameParams{
			StartingBalance: cfg.Game.StartingBalance,
			AdminUsername:   cfg.Game.AdminUsername,
			LeaderboardSize: cfg.Game.LeaderboardSize,
			CacheTTL:        cfg.Cache.TTL,
		},
	)

	// Initialize handlers
	debug := cfg.App.IsDevelopment() || cfg.App.Debug
	healthHandler := handler.New(cfg.App.Version)
	authHandler := handler.NewAuthHandler(gameService, tokenService, debug)
	userHandler := handler.NewUserHandler(gameService, debug)
	gameHandler := handler.NewGameHandler(gameService, debug)
	leaderboardHandler := handler.NewLeaderboardHandler(gameService, debug)
	adminHandler := handler.NewAdminHandler(gameService, cfg.Store.Type, debug)

	// Create auth middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.New(router.Config{
		Handler:            healthHandler,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		GameHandler:        gameHandler,
		LeaderboardHandler: leaderboardHandler,
		AdminHandler:       adminHandler,
		AuthMiddleware:     authMiddleware,
		StaticDir:          cfg.Server.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
