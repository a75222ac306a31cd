package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/reflect-backend/internal/logger"
)

var RedisClient *redis.Client

// redisOptions parses the URI and applies the pool settings sessions,
// cache and rate limiting share.
func redisOptions(redisURI string) (*redis.Options, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute
	return opt, nil
}

func ConnectRedis(ctx context.Context, redisURI string) error {
	opt, err := redisOptions(redisURI)
	if err != nil {
		return err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	RedisClient = client

	logger.Info("connected to Redis", "addr", opt.Addr, "db", opt.DB)
	return nil
}

func PingRedis(ctx context.Context) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Ping(ctx).Err()
}

func DisconnectRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}
