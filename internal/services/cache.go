package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

const (
	TemplateCacheKeyPrefix = "prompt_template:"
	CategoriesCacheKey     = "catalog:categories"
	TagsCacheKey           = "catalog:tags"
	CacheDuration          = 1 * time.Hour
)

func templateCacheKey(id string) string {
	return TemplateCacheKeyPrefix + id
}

// cacheGet fills dst from redis. A miss, a disabled cache and a decode failure
// all report false; the database stays the source of truth.
func cacheGet(ctx context.Context, key string, dst any) bool {
	if database.RedisClient == nil {
		return false
	}
	val, err := database.RedisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dst) == nil
}

func cacheSet(ctx context.Context, key string, v any) {
	if database.RedisClient == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := database.RedisClient.Set(ctx, key, data, CacheDuration).Err(); err != nil {
		logger.Log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheDel(ctx context.Context, keys ...string) {
	if database.RedisClient == nil {
		return
	}
	if err := database.RedisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
