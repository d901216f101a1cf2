package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/go-redis/redis/v8"
)

const (
	profileKeyPrefix = "profile:"
	dedupKeyPrefix   = "dedup:"
	revokedKeyPrefix = "revoked:"
)

// NewConnectRedis parses cfg.URL and pings the server.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis URL cannot be empty")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := redis.NewClient(opts)
	if err = client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Info().Str("func", "NewConnectRedis").Msg("connected to redis successfully")

	return client, nil
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache stores JSON encoded profiles under "profile:<uid>".
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	return &redisProfileCache{client: client, ttl: ttl}
}

func (c *redisProfileCache) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	data, err := c.client.Get(ctx, profileKeyPrefix+uid).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.UserProfile{}, ErrCacheMiss
		}
		return models.UserProfile{}, fmt.Errorf("redis get: %w", err)
	}

	var p models.UserProfile
	if err = json.Unmarshal(data, &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode cached profile: %w", err)
	}
	return p, nil
}

func (c *redisProfileCache) Set(ctx context.Context, p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile for cache: %w", err)
	}

	return c.client.Set(ctx, profileKeyPrefix+p.UID, data, c.ttl).Err()
}

func (c *redisProfileCache) Delete(ctx context.Context, uid string) error {
	return c.client.Del(ctx, profileKeyPrefix+uid).Err()
}

type redisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDeduplicator remembers keys with SETNX for ttl.
func NewRedisDeduplicator(client *redis.Client, ttl time.Duration) Deduplicator {
	return &redisDeduplicator{client: client, ttl: ttl}
}

func (d *redisDeduplicator) FirstSeen(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupKeyPrefix+key, time.Now().Unix(), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (d *redisDeduplicator) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, dedupKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

type redisTokenRevoker struct {
	client *redis.Client
}

// NewRedisTokenRevoker keeps revoked token ids until the token would have
// expired anyway.
func NewRedisTokenRevoker(client *redis.Client) TokenRevoker {
	return &redisTokenRevoker{client: client}
}

func (r *redisTokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *redisTokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
