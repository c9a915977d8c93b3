package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/model"
)

const activePointsKey = "recycling_points:active"

// PointsCache keeps the list of active recycling points. All methods are safe
// on a nil client and behave as a permanent miss.
type PointsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewPointsCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *PointsCache {
	return &PointsCache{client: client, ttl: ttl, log: log}
}

// GetActive returns the cached points and whether the cache held them.
func (c *PointsCache) GetActive(ctx context.Context) ([]model.RecyclingPoint, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, activePointsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var points []model.RecyclingPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, false, fmt.Errorf("unmarshal points: %w", err)
	}
	c.log.Debug().Int("count", len(points)).Msg("recycling points cache hit")
	return points, true, nil
}

func (c *PointsCache) SetActive(ctx context.Context, points []model.RecyclingPoint) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal points: %w", err)
	}
	if err := c.client.Set(ctx, activePointsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (c *PointsCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, activePointsKey).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
