// Package redis はgo-redisクライアントの生成を担当します。
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"movie_backend/internal/app/config"
)

// NewRedisClient は設定からRedisクライアントを生成し、疎通確認を行います。
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	addr := cfg.RedisAddr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
