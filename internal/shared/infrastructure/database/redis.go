package database

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the unread-count cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

const redisDialTimeout = 5 * time.Second

// NewRedis connects and verifies the connection with a ping. The server
// treats a failure as "run without the cache" rather than aborting startup,
// so the error carries the address for the log line.
func NewRedis(cfg RedisConfig) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}
