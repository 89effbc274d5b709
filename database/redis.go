package database

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient initializes and returns a Redis client.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	zap.L().Info("Connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}
