package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging

	"github.com/Zagreus0809/School-Digital-Wallet/internal/api"        // API handlers
	"github.com/Zagreus0809/School-Digital-Wallet/internal/config"     // Configuration
	"github.com/Zagreus0809/School-Digital-Wallet/internal/db"         // Database connection
	"github.com/Zagreus0809/School-Digital-Wallet/internal/ledger"     // Ledger store
	"github.com/Zagreus0809/School-Digital-Wallet/internal/middleware" // Auth middleware
	"github.com/Zagreus0809/School-Digital-Wallet/internal/notify"     // Connection registry
	"github.com/Zagreus0809/School-Digital-Wallet/internal/processor"  // Transaction processor
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the core: ledger store, connection registry, processor
	store := ledger.NewGormStore(gdb)      // Durable ledger store
	registry := notify.NewRegistry()       // Lifecycle-scoped connection registry
	proc := processor.New(store, registry) // Transaction processor

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/api/auth/register", api.RegisterHandler(store))          // Registration endpoint
	r.POST("/api/auth/login", api.LoginHandler(store, cfg.JWTSecret)) // Login endpoint

	// Authenticated routes (protected by JWT)
	authed := r.Group("/api")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authed.GET("/auth/me", api.MeHandler(store))                                          // Current user endpoint
	authed.POST("/auth/logout", api.LogoutHandler())                                      // Logout acknowledgement
	authed.GET("/users/:id", api.GetUserHandler(store))                                   // User lookup endpoint
	authed.GET("/users/wallet/:walletId", api.GetUserByWalletHandler(store))              // Receiver preview endpoint
	authed.GET("/wallet", api.GetWalletHandler(store, redisClient))                       // Wallet endpoint
	authed.POST("/transactions", api.TransferHandler(proc, redisClient))                  // Transfer endpoint
	authed.GET("/transactions", api.ListTransactionsHandler(store, redisClient))          // Transaction history endpoint
	authed.GET("/transactions/recent", api.RecentTransactionsHandler(store, redisClient)) // Recent transactions endpoint

	// Real-time channel; the first client message binds the connection
	r.GET("/ws", api.WebSocketHandler(registry))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
