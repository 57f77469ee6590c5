package cache

import (
	"context"

	"social-hub/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects the Redis client used for short-lived read caching.
// Callers treat a nil client as "caching disabled".
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not reachable")
		return nil, err
	}
	return client, nil
}
