package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-chat/config"
	"clinic-chat/internal/handler"
	"clinic-chat/internal/middleware"
	"clinic-chat/internal/redis"
	"clinic-chat/internal/repository"
	"clinic-chat/internal/repository/memory"
	"clinic-chat/internal/server"
	"clinic-chat/internal/services"
	"clinic-chat/pkg/database"
	"clinic-chat/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)

	err = run(cfg, l)
	l.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, l *logger.Logger) error {
	uow, health, err := openStore(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer database.Close()

	var (
		cache   services.SummaryCache
		limiter middleware.MessageLimiter
	)
	if cfg.RedisEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redis.Ping(ctx, client)
		cancel()
		if err != nil {
			return err
		}
		cache = redis.NewCacheStore(client, redis.CacheConfig{SummaryTTL: cfg.SummaryCacheTTL})
		limiter = redis.NewRateLimiter(client, redis.RateLimitConfig{
			MessageLimit:  cfg.MessageRateLimit,
			MessageWindow: cfg.MessageRateWindow,
		})
		l.Infof("Redis cache and rate limiter enabled")
	}

	userService := services.NewUserService(uow, l)
	conversationService := services.NewConversationService(uow, userService, l)
	messageService := services.NewMessageService(uow, userService, conversationService, l)
	ratingService := services.NewRatingService(uow, userService, conversationService, cache, l)

	opts := server.Options{Limiter: limiter, Health: health}
	if cfg.AuthEnabled {
		opts.Auth = services.NewAuthService(userService, cfg)
		l.Infof("Bearer authentication enabled")
	}

	srv := server.New(cfg, l)
	if err := srv.SetupRoutes(&server.Handlers{
		Users:         handler.NewUserHandler(userService, ratingService),
		Conversations: handler.NewConversationHandler(conversationService),
		Messages:      handler.NewMessageHandler(messageService),
		Ratings:       handler.NewRatingHandler(ratingService),
	}, opts); err != nil {
		return err
	}

	return srv.Start()
}

func openStore(cfg *config.Config, l *logger.Logger) (repository.UnitOfWork, repository.HealthChecker, error) {
	if cfg.StorageDriver == config.StorageMemory {
		l.Infof("Using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return store, store, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := repository.InitSchema(db); err != nil {
			return nil, nil, err
		}
	}
	uow := repository.NewUnitOfWork(db)
	return uow, uow, nil
}
