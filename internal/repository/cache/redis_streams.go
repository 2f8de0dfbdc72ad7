package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/trip-planner/internal/config"
	"go.uber.org/zap"
)

// NewRedisStreams creates a dedicated Redis client for stream operations,
// so that worker reads do not share the connection pool with the cache.
func NewRedisStreams(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis streams: %w", err)
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)

	return client, nil
}
