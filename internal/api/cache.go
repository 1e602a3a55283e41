package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "fakeshop:api:"

// Cache stores rendered responses by request URI.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(ctx context.Context, connectionURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, cacheKeyPrefix+key, value, ttl).Err()
}

func (r *RedisCache) Close() error { return r.client.Close() }

// cacheMiddleware serves successful GET responses from cache. Cache failures
// are logged and the request falls through to the handler.
func (s *Server) cacheMiddleware(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return c.Next()
	}
	key := c.OriginalURL()
	ctx := c.UserContext()

	if body, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("Cache read failed", "key", key, "error", err)
	} else if ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set("X-Cache", "HIT")
		return c.Send(body)
	}

	if err := c.Next(); err != nil {
		return err
	}
	if c.Response().StatusCode() != fiber.StatusOK {
		return nil
	}
	body := append([]byte(nil), c.Response().Body()...)
	if err := s.cache.Set(ctx, key, body, s.cacheTTL); err != nil {
		s.log.Warn("Cache write failed", "key", key, "error", err)
	}
	c.Set("X-Cache", "MISS")
	return nil
}
