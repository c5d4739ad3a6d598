package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"LifeKLine/cmn/destiny"
)

const cacheKeyPrefix = "analysis:"

// Cache 分析结果缓存，未命中时返回 nil, nil
type Cache interface {
	Get(ctx context.Context, hash string) (*destiny.LifeDestinyResult, error)
	Set(ctx context.Context, hash string, result *destiny.LifeDestinyResult) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache client 为 nil 时返回不做任何事的缓存
func NewCache(client *redis.Client, ttl time.Duration) Cache {
	if client == nil {
		return noopCache{}
	}
	return &redisCache{client: client, ttl: ttl}
}

func cacheKey(hash string) string {
	return cacheKeyPrefix + hash
}

func (c *redisCache) Get(ctx context.Context, hash string) (*destiny.LifeDestinyResult, error) {
	raw, err := c.client.Get(ctx, cacheKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result destiny.LifeDestinyResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *redisCache) Set(ctx context.Context, hash string, result *destiny.LifeDestinyResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(hash), raw, c.ttl).Err()
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*destiny.LifeDestinyResult, error) {
	return nil, nil
}

func (noopCache) Set(context.Context, string, *destiny.LifeDestinyResult) error {
	return nil
}
