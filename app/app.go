package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jewel-studio-api/config"
	"jewel-studio-api/db"
	"jewel-studio-api/handler"
	"jewel-studio-api/logger"
	"jewel-studio-api/repository"
	"jewel-studio-api/router"
	"jewel-studio-api/service"
)

func Run() {
	logger.Init()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(cfg, "file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	// The catalog cache is optional; the store remains the source of truth.
	var cache service.CacheClient
	if cfg.Redis.Host != "" {
		redisClient, err := db.ConnectRedis(cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("Redis unavailable, continuing without listing cache")
		} else {
			defer redisClient.Close()
			cache = service.NewRedisCache(redisClient)
		}
	}

	var storage service.MediaStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := service.NewS3MediaStorage(context.Background(), cfg)
		if err != nil {
			logger.Log.Fatalf("Error configuring media storage: %v", err)
		}
		storage = s3Storage
	} else {
		logger.Log.Warn("Media storage not configured, upload endpoints will fail")
	}

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	productRepo := repository.NewProductRepository(database)

	authService := service.NewAuthService(cfg, userRepo, tokenRepo)
	catalogService := service.NewCatalogService(productRepo, cache, cfg)
	productService := service.NewProductService(productRepo, catalogService)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	adminHandler := handler.NewAdminHandler(productService, storage)

	r := router.NewRouter(authHandler, productHandler, adminHandler, authService)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
