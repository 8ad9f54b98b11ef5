package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/pkg/errors"
)

type cacheRepository struct {
	redis  *Redis
	logger *zap.Logger
}

func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &cacheRepository{
		redis:  r,
		logger: r.logger,
	}
}

func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.redis.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	return data, nil
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.redis.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := c.redis.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}

func (c *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.redis.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn("Cache exists failed", zap.String("key", key), zap.Error(err))
		return false, errors.ErrCacheError
	}
	return n > 0, nil
}
