package database

import (
	"context"
	"fmt"

	"lms_backend/internal/config"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis connects to redis. Redis only backs the evaluation detail
// cache, so an unreachable server downgrades to a nil client and a
// warning instead of failing startup; callers treat nil as caching off.
func InitRedis(cfg *config.RedisConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		logger.Log.Warn("Redis unavailable, detail caching disabled", zap.Error(err))
		return nil
	}

	logger.Log.Info("Redis connection established")
	return rdb
}
