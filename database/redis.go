package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewhub/internal/config"
)

// ConnectRedis opens the cache client. Callers may treat a failure as
// non-fatal: the catalog list cache degrades to the database.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
