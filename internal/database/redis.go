package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/campaignlog/internal/config"
)

// Redis only holds campaign snapshots, and every caller falls back to
// MariaDB on a cache error. Short timeouts make a sick Redis look like a
// miss instead of stalling the detail panel.
const (
	redisDialTimeout = 2 * time.Second
	redisIOTimeout   = 500 * time.Millisecond
)

// NewRedis opens the snapshot cache client described by cfg.URL and pings it.
// An empty URL is an error; callers skip NewRedis to run without a cache.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.DialTimeout = redisDialTimeout
	opts.ReadTimeout = redisIOTimeout
	opts.WriteTimeout = redisIOTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}

	slog.Debug("campaign snapshot cache ready",
		slog.String("addr", opts.Addr),
		slog.Int("db", opts.DB),
		slog.Duration("ttl", cfg.CampaignCacheTTL),
	)
	return client, nil
}
