package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"social-hub/domain/model"
	"social-hub/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const overviewTTL = 60 * time.Second

// OverviewCache keeps analytics overviews in Redis for a minute so dashboard
// polling does not hammer the aggregate queries. All methods tolerate a nil
// client: misses are returned and writes are dropped.
type OverviewCache struct {
	redisClient *redis.Client
}

func NewOverviewCache(redisClient *redis.Client) *OverviewCache {
	return &OverviewCache{redisClient: redisClient}
}

func overviewKey(userID int64, platform string) string {
	return fmt.Sprintf("analytics:overview:%d:%s", userID, platform)
}

// Get returns (nil, false) on a miss, a nil client, or a decode failure.
func (c *OverviewCache) Get(ctx context.Context, userID int64, platform string) (*model.AnalyticsOverview, bool) {
	if c == nil || c.redisClient == nil {
		return nil, false
	}
	payload, err := c.redisClient.Get(ctx, overviewKey(userID, platform)).Bytes()
	if err != nil {
		return nil, false
	}
	var overview model.AnalyticsOverview
	if err := json.Unmarshal(payload, &overview); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Dropping undecodable cached overview")
		return nil, false
	}
	return &overview, true
}

func (c *OverviewCache) Set(ctx context.Context, userID int64, platform string, overview *model.AnalyticsOverview) {
	if c == nil || c.redisClient == nil {
		return
	}
	payload, err := json.Marshal(overview)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, overviewKey(userID, platform), payload, overviewTTL).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed caching overview")
	}
}

// Invalidate drops the cached overview after a posts or analytics sync.
func (c *OverviewCache) Invalidate(ctx context.Context, userID int64, platform string) {
	if c == nil || c.redisClient == nil {
		return
	}
	if err := c.redisClient.Del(ctx, overviewKey(userID, platform)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed invalidating overview cache")
	}
}
