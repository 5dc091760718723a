package repository

import (
	"context"
	"fmt"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// OperatorCache persists the resolved operator across process restarts so the
// console can show a provisional session before the provider round trip
// finishes. Stored as a flat field map under a single key.
type OperatorCache interface {
	Get(ctx context.Context) (*model.Operator, error)
	Put(ctx context.Context, operator *model.Operator) error
	Clear(ctx context.Context) error
}

type redisOperatorCache struct {
	rdb *redis.Client
	key string
}

// NewRedisOperatorCache takes the cache key explicitly; there is no ambient
// package-level key.
func NewRedisOperatorCache(rdb *redis.Client, key string) OperatorCache {
	return &redisOperatorCache{rdb: rdb, key: key}
}

func (c *redisOperatorCache) Get(ctx context.Context) (*model.Operator, error) {
	fields, err := c.rdb.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redisOperatorCache.Get: %w", err)
	}
	if len(fields) == 0 {
		return nil, common.ErrNotFound
	}
	return &model.Operator{
		ID:    fields["id"],
		Email: fields["email"],
		Role:  fields["role"],
	}, nil
}

func (c *redisOperatorCache) Put(ctx context.Context, operator *model.Operator) error {
	err := c.rdb.HSet(ctx, c.key, map[string]interface{}{
		"id":    operator.ID,
		"email": operator.Email,
		"role":  operator.Role,
	}).Err()
	if err != nil {
		return fmt.Errorf("redisOperatorCache.Put: %w", err)
	}
	return nil
}

func (c *redisOperatorCache) Clear(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redisOperatorCache.Clear: %w", err)
	}
	return nil
}
