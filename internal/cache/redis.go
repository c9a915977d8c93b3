package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/config"
)

const pingTimeout = 5 * time.Second

// NewClient connects to Redis when REDIS_ADDR is configured. A nil client
// means caching is disabled.
func NewClient(cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis not configured, caching disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	return client, nil
}
