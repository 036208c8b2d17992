// Package redis holds the Redis backed adapters: the transition deduper and
// the client shared with the HTTP rate limiter store.
package redis

import (
	"context"
	"fmt"

	rds "github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

func NewClient(cfg Config) *rds.Client {
	client := rds.NewClient(&rds.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return client
}

// Ping fails fast on a wrong address instead of at the first dispatch.
func Ping(ctx context.Context, client *rds.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return nil
}
