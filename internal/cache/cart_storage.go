package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisDisabled Redis 未启用
var ErrRedisDisabled = errors.New("redis disabled")

// CartStorage 基于 Redis 的购物车持久化，记录在 ttl 内未更新即过期
type CartStorage struct {
	ttl time.Duration
}

// NewCartStorage 创建 Redis 购物车存储
func NewCartStorage(ttl time.Duration) *CartStorage {
	return &CartStorage{ttl: ttl}
}

// Load 读取购物车记录
func (s *CartStorage) Load(ctx context.Context, key string) (string, bool, error) {
	if !Enabled() {
		return "", false, ErrRedisDisabled
	}
	val, err := redisClient.Get(ctx, buildKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Save 写入购物车记录并刷新过期时间
func (s *CartStorage) Save(ctx context.Context, key, payload string) error {
	if !Enabled() {
		return ErrRedisDisabled
	}
	return redisClient.Set(ctx, buildKey(key), payload, s.ttl).Err()
}

// Remove 删除购物车记录
func (s *CartStorage) Remove(ctx context.Context, key string) error {
	if !Enabled() {
		return ErrRedisDisabled
	}
	return redisClient.Del(ctx, buildKey(key)).Err()
}
