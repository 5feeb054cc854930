// Package redis opens the pooled client used for customer session tokens.
package redis

import (
	"context"
	"fmt"
	"time"

	"smartCanteen/pkg/config"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 5 * time.Second
	opTimeout    = 3 * time.Second
	poolSize     = 10
	minIdleConns = 5
)

// NewRedisClient dials Redis with the configured address and verifies the
// connection with a ping before handing the client out. Session middleware
// hits Redis on every authenticated request, so a dead connection must fail
// at startup, not on the first login.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.Redis.RedisHost, cfg.Redis.RedisPort),
		Username:     "default",
		Password:     cfg.Redis.RedisPassword,
		DB:           cfg.Redis.RedisDB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// CloseRedisClient is safe to defer even when the client was never opened.
func CloseRedisClient(client *redis.Client) error {
	if client == nil {
		return nil
	}

	return client.Close()
}
