package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis connection and verifies it with a ping.
// The returned client is owned by the caller; there is no package-level
// handle.
func Connect(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return client, nil
}
