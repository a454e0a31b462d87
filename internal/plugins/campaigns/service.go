package campaigns

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/metrics"
)

// CampaignService returns campaign snapshots for context extraction.
type CampaignService interface {
	// GetSnapshot returns the assembled campaign, from cache when possible.
	GetSnapshot(ctx context.Context, campaignID string) (*activitylog.Campaign, error)

	// Invalidate drops the cached snapshot for a campaign.
	Invalidate(ctx context.Context, campaignID string) error
}

// campaignService implements CampaignService.
type campaignService struct {
	repo  CampaignRepository
	cache SnapshotCache
}

// NewCampaignService creates a campaign service. cache may be nil, in which
// case every lookup reads MariaDB.
func NewCampaignService(repo CampaignRepository, cache SnapshotCache) CampaignService {
	return &campaignService{repo: repo, cache: cache}
}

// GetSnapshot reads the snapshot from the cache, falling back to MariaDB on
// a miss. Cache failures are logged and treated as misses: a Redis outage
// slows the detail panel down but never breaks it.
func (s *campaignService) GetSnapshot(ctx context.Context, campaignID string) (*activitylog.Campaign, error) {
	if campaignID == "" {
		return nil, apperror.NewBadRequest("campaign ID is required")
	}

	if s.cache != nil {
		snap, err := s.cache.Get(ctx, campaignID)
		switch {
		case err != nil:
			metrics.CampaignCacheTotal.WithLabelValues("error").Inc()
			slog.Warn("campaign cache read failed",
				slog.String("campaign_id", campaignID),
				slog.Any("error", err),
			)
		case snap != nil:
			metrics.CampaignCacheTotal.WithLabelValues("hit").Inc()
			return snap, nil
		default:
			metrics.CampaignCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	snap, err := s.load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snap); err != nil {
			slog.Warn("campaign cache write failed",
				slog.String("campaign_id", campaignID),
				slog.Any("error", err),
			)
		}
	}
	return snap, nil
}

// load assembles a snapshot from the three campaign tables.
func (s *campaignService) load(ctx context.Context, campaignID string) (*activitylog.Campaign, error) {
	c, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("loading campaign: %w", err))
	}

	shortlisted, err := s.repo.ListShortlisted(ctx, campaignID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("loading shortlisted creators: %w", err))
	}

	pitches, err := s.repo.ListPitches(ctx, campaignID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("loading pitches: %w", err))
	}

	return Snapshot(c, shortlisted, pitches), nil
}

// Invalidate drops the cached snapshot. A nil cache makes this a no-op.
func (s *campaignService) Invalidate(ctx context.Context, campaignID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, campaignID); err != nil {
		return apperror.NewInternal(err)
	}
	return nil
}
