package redis

import (
	"context"
	"time"

	rds "github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "orderflow:transition:"
	DefaultTTL       = 24 * time.Hour
)

// TransitionDeduper claims a change key with SET NX. Keys expire after ttl,
// which bounds how long a redelivery is recognized.
type TransitionDeduper struct {
	client *rds.Client
	prefix string
	ttl    time.Duration
}

func NewTransitionDeduper(client *rds.Client, prefix string, ttl time.Duration) *TransitionDeduper {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TransitionDeduper{client: client, prefix: prefix, ttl: ttl}
}

func (d *TransitionDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return d.client.SetNX(ctx, d.prefix+key, 1, d.ttl).Result()
}

func (d *TransitionDeduper) Release(ctx context.Context, key string) error {
	return d.client.Del(ctx, d.prefix+key).Err()
}
