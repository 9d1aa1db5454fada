package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/vbitzceo/voidbitzPromptWorkshop/config"
)

var (
	// RedisClient is nil when the template and catalog caches are off.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis enables the caches when a redis host is configured and checks
// the server answers.
func ConnectRedis(cfg *config.Config) error {
	RedisClient = nil
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(Ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis at %s: %w", cfg.RedisFullAddr(), err)
	}
	RedisClient = client
	return nil
}
