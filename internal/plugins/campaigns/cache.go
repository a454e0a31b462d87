package campaigns

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

// snapshotKeyPrefix namespaces campaign snapshots in the shared Redis.
const snapshotKeyPrefix = "campaignlog:campaign:"

// SnapshotCache stores assembled campaign snapshots.
type SnapshotCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a miss.
	Get(ctx context.Context, campaignID string) (*activitylog.Campaign, error)

	// Set stores the snapshot with the cache's TTL.
	Set(ctx context.Context, snap *activitylog.Campaign) error

	// Invalidate drops the cached snapshot so the next read hits MariaDB.
	Invalidate(ctx context.Context, campaignID string) error
}

// redisSnapshotCache implements SnapshotCache as JSON values with a TTL.
type redisSnapshotCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisSnapshotCache creates a Redis-backed snapshot cache.
func NewRedisSnapshotCache(rdb *redis.Client, ttl time.Duration) SnapshotCache {
	return &redisSnapshotCache{redis: rdb, ttl: ttl}
}

func (c *redisSnapshotCache) Get(ctx context.Context, campaignID string) (*activitylog.Campaign, error) {
	data, err := c.redis.Get(ctx, snapshotKeyPrefix+campaignID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading campaign snapshot from Redis: %w", err)
	}

	var snap activitylog.Campaign
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling campaign snapshot: %w", err)
	}
	return &snap, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, snap *activitylog.Campaign) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling campaign snapshot: %w", err)
	}
	if err := c.redis.Set(ctx, snapshotKeyPrefix+snap.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("storing campaign snapshot in Redis: %w", err)
	}
	return nil
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context, campaignID string) error {
	if err := c.redis.Del(ctx, snapshotKeyPrefix+campaignID).Err(); err != nil {
		return fmt.Errorf("deleting campaign snapshot from Redis: %w", err)
	}
	return nil
}
