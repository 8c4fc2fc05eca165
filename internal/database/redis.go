package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"project-config-api/internal/config"
)

var RedisClient *redis.Client

// InitRedis connects the snapshot cache. A redis:// URL takes precedence over Addr.
func InitRedis(cfg config.RedisConfig, log *zap.Logger) error {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return err
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RedisClient = client
	log.Info("Redis connection established successfully", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return nil
}

func GetRedis() *redis.Client {
	// nil when redis is not configured; callers fall back to uncached snapshots
	return RedisClient
}
