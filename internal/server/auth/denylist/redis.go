package denylist

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "qaforum:denylist:"

// RedisDenylist shares revocations between server instances.
type RedisDenylist struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisDenylist(rdb *redis.Client) *RedisDenylist {
	return &RedisDenylist{rdb: rdb, now: time.Now}
}

// NewRedisClient parses url, connects and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.rdb.Set(ctx, keyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("denylist exists: %w", err)
	}
	return n > 0, nil
}
