package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/internal/app/controller"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
	"github.com/jmlee/fantasy-shop-backend/internal/router"
	"github.com/jmlee/fantasy-shop-backend/internal/scheduler"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/jmlee/fantasy-shop-backend/pkg/oauth/firebase"
	"github.com/jmlee/fantasy-shop-backend/pkg/oauth/kakao"
	"github.com/jmlee/fantasy-shop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting CS Fantasy Shop Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis
	redisClient, err := redis.Connect(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize OAuth clients. A missing key disables the provider but
	// does not block local login.
	var kakaoAuth service.KakaoAuthenticator
	var kakaoURL controller.KakaoURLBuilder
	if kakaoClient, err := kakao.NewClient(kakao.Config{
		ClientID:     cfg.Kakao.ClientID,
		ClientSecret: cfg.Kakao.ClientSecret,
		RedirectURI:  cfg.Kakao.RedirectURI,
		AuthBaseURL:  cfg.Kakao.AuthBaseURL,
		APIBaseURL:   cfg.Kakao.APIBaseURL,
	}); err != nil {
		logger.Warn("Kakao client not configured, Kakao login disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		kakaoAuth = kakaoClient
		kakaoURL = kakaoClient
	}

	var firebaseAuth service.FirebaseVerifier
	if firebaseClient, err := firebase.NewClient(firebase.Config{
		ProjectID:    cfg.Firebase.ProjectID,
		TokenInfoURL: cfg.Firebase.TokenInfoURL,
	}); err != nil {
		logger.Warn("Firebase client not configured, Firebase login disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		firebaseAuth = firebaseClient
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	itemRepo := repository.NewItemRepository(database)
	cartRepo := repository.NewCartRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	inventoryRepo := repository.NewInventoryRepository(database)
	tokenStore := repository.NewRefreshTokenStore(redisClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenStore, kakaoAuth, firebaseAuth, cfg.JWT)
	itemService := service.NewItemService(itemRepo, categoryRepo, orderRepo, redisClient, cfg.Scheduler.PopularItemsTTL)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, database)
	inventoryService := service.NewInventoryService(inventoryRepo)
	adminService := service.NewAdminService(itemRepo, orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, kakaoURL)
	itemController := controller.NewItemController(itemService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	inventoryController := controller.NewInventoryController(inventoryService)
	adminController := controller.NewAdminController(adminService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)
	rateLimit := middleware.NewRateLimitMiddleware(redisClient, cfg.RateLimit.AuthRequestsPerMinute, time.Minute)

	// Start the popular items scheduler
	popularScheduler := scheduler.NewPopularItemsScheduler(
		orderRepo,
		redisClient,
		cfg.Scheduler.PopularItemsCron,
		cfg.Scheduler.PopularItemsTTL,
	)
	if err := popularScheduler.Start(); err != nil {
		logger.Fatal("Failed to start popular items scheduler", err)
	}
	defer popularScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		itemController,
		cartController,
		orderController,
		inventoryController,
		adminController,
		authMiddleware,
		rateLimit,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
