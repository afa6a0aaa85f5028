package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stefvuck/trailhead/internal/domain"
)

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type RedisCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.EnrichedRoadmap, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		slog.Warn("roadmap cache read failed", "key", key, "error", err)
		return nil, nil
	}

	var rm domain.EnrichedRoadmap
	if err := json.Unmarshal(raw, &rm); err != nil {
		slog.Warn("roadmap cache entry corrupt, dropping", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return &rm, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, roadmap *domain.EnrichedRoadmap) error {
	raw, err := json.Marshal(roadmap)
	if err != nil {
		return fmt.Errorf("failed to marshal roadmap: %w", err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
