package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/metrics"
	"github.com/keyxmakerx/campaignlog/internal/sanitize"
)

// maxFeedEntries bounds how many of a campaign's most recent entries are
// classified per feed request. Tab membership is derived in Go, so tab
// counts and tab pages are computed over this window rather than in SQL.
const maxFeedEntries = 5000

// maxActionLength is counted in characters, not bytes. Longer lines
// are rejected rather than truncated so a name is never cut in half.
const maxActionLength = 2000

// ActivityService handles business logic for campaign logs.
type ActivityService interface {
	// Record sanitizes, validates and stores one log line, returning it
	// classified.
	Record(ctx context.Context, campaignID string, input RecordInput) (*activitylog.ClassifiedLog, error)

	// GetFeed returns one page of the campaign timeline under tab. Pages
	// are 1-indexed; out-of-range pages are clamped.
	GetFeed(ctx context.Context, campaignID string, tab activitylog.Tab, page int) (*Feed, error)

	// GetLogDetail returns a single entry with its context resolved against
	// campaign.
	GetLogDetail(ctx context.Context, campaign *activitylog.Campaign, logID string) (*LogDetail, error)
}

// activityService implements ActivityService.
type activityService struct {
	repo    LogRepository
	perPage int
	now     func() time.Time
}

// NewActivityService creates an activity service showing perPage entries
// per feed page.
func NewActivityService(repo LogRepository, perPage int) ActivityService {
	if perPage < 1 {
		perPage = 50
	}
	return &activityService{repo: repo, perPage: perPage, now: time.Now}
}

func (s *activityService) Record(ctx context.Context, campaignID string, input RecordInput) (*activitylog.ClassifiedLog, error) {
	if campaignID == "" {
		return nil, apperror.NewBadRequest("campaign ID is required")
	}

	action := sanitize.Text(input.Action)
	if action == "" {
		return nil, apperror.NewValidation("action is required")
	}
	if utf8.RuneCountInString(action) > maxActionLength {
		return nil, apperror.NewValidation(fmt.Sprintf("action must be at most %d characters", maxActionLength))
	}

	entry := &activitylog.LogEntry{
		ID:            uuid.NewString(),
		Action:        action,
		PerformedBy:   sanitize.Text(input.PerformedBy),
		PerformerRole: activitylog.ParseRole(input.PerformerRole),
		CreatedAt:     s.now().UTC(),
	}
	if input.CreatedAt != nil && !input.CreatedAt.IsZero() {
		entry.CreatedAt = input.CreatedAt.UTC()
	}
	// The column is DATETIME(3) in UTC.
	entry.CreatedAt = entry.CreatedAt.Truncate(time.Millisecond)

	if err := s.repo.Log(ctx, campaignID, entry); err != nil {
		slog.Error("failed to write campaign log",
			slog.String("campaign_id", campaignID),
			slog.Any("error", err),
		)
		return nil, apperror.NewInternal(fmt.Errorf("writing campaign log: %w", err))
	}
	metrics.IngestedTotal.Inc()

	classified := s.process(*entry)
	slog.Debug("campaign log recorded",
		slog.String("campaign_id", campaignID),
		slog.String("log_id", entry.ID),
		slog.String("category", string(classified.Category)),
	)
	return &classified, nil
}

func (s *activityService) GetFeed(ctx context.Context, campaignID string, tab activitylog.Tab, page int) (*Feed, error) {
	entries, err := s.repo.ListByCampaign(ctx, campaignID, maxFeedEntries)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing campaign logs: %w", err))
	}

	all := make([]activitylog.ClassifiedLog, len(entries))
	for i, e := range entries {
		all[i] = s.process(e)
	}

	visible := activitylog.FilterLogsByTab(all, tab)
	feed := &Feed{
		CampaignID: campaignID,
		Tab:        tab,
		PerPage:    s.perPage,
		Total:      len(visible),
		Counts:     activitylog.GetTabCounts(all),
	}

	page = min(max(page, 1), feed.TotalPages())
	feed.Page = page

	start := min((page-1)*s.perPage, len(visible))
	end := min(start+s.perPage, len(visible))
	feed.Logs = visible[start:end]
	// Stored timestamps are UTC; today must be the UTC day as well.
	feed.Days = activitylog.GroupLogsByDate(feed.Logs, s.now().UTC())

	return feed, nil
}

func (s *activityService) GetLogDetail(ctx context.Context, campaign *activitylog.Campaign, logID string) (*LogDetail, error) {
	if campaign == nil {
		return nil, apperror.NewBadRequest("campaign is required")
	}

	entry, err := s.repo.FindByID(ctx, campaign.ID, logID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("loading campaign log: %w", err))
	}

	classified := s.process(*entry)
	return &LogDetail{
		Log:      classified,
		Context:  activitylog.ExtractContext(classified, campaign),
		Segments: activitylog.ParseTokens(classified.FormattedAction),
	}, nil
}

// process runs the classification pipeline and counts the category.
func (s *activityService) process(e activitylog.LogEntry) activitylog.ClassifiedLog {
	l := activitylog.Process(e)
	metrics.ClassifiedTotal.WithLabelValues(string(l.Category)).Inc()
	return l
}
