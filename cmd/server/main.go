package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tapfolio.app/backend/internal/config"
	"tapfolio.app/backend/internal/model"
	"tapfolio.app/backend/internal/server"
	"tapfolio.app/backend/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.AppEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db := database.Connect()
	if err := migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	redisClient := newRedisClient(cfg.RedisURL, logger)

	srv := server.NewServer(cfg, db, redisClient, logger)

	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.CustomLink{},
		&model.SocialLink{},
		&model.Service{},
		&model.WidgetSetting{},
	)
}

// newRedisClient returns nil when REDIS_URL is unset; view counting and
// rate limiting degrade gracefully without it.
func newRedisClient(redisURL string, logger *zap.Logger) *redis.Client {
	if redisURL == "" {
		logger.Warn("REDIS_URL not set, view counting and rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}

	return redis.NewClient(opts)
}
