package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/manvaasam/manvaasam-server/internal/api"
	"github.com/manvaasam/manvaasam-server/internal/config"
	"github.com/manvaasam/manvaasam-server/internal/repository"
	"github.com/manvaasam/manvaasam-server/internal/service"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to set up database", zap.Error(err))
	}
	defer db.Close()

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// OTP challenges live in Redis when configured, otherwise in process
	// memory (single-instance deployments only).
	var challenges repository.ChallengeStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		challenges = repository.NewRedisChallengeStore(client)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory OTP challenge store")
		challenges = repository.NewMemoryChallengeStore()
	}

	// Create service
	sms := service.NewLogSMSSender(logger)
	svc := service.NewDefaultService(repo, challenges, sms, cfg.Auth.JWTSecret, cfg.Auth.OTPEcho)

	// Create API handler
	handler := api.NewHandler(svc, logger)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
