package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// CampaignRepository defines the data access contract for campaign reads.
// All SQL lives in the concrete implementation.
type CampaignRepository interface {
	// FindByID returns the campaign row, or a NotFound AppError.
	FindByID(ctx context.Context, id string) (*Campaign, error)

	// ListShortlisted returns the campaign's shortlisted creators in
	// insertion order.
	ListShortlisted(ctx context.Context, campaignID string) ([]ShortlistedCreator, error)

	// ListPitches returns the campaign's pitches in insertion order.
	ListPitches(ctx context.Context, campaignID string) ([]Pitch, error)
}

// campaignRepository implements CampaignRepository with MariaDB queries.
type campaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository creates a new repository backed by the given DB pool.
func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// FindByID retrieves a campaign by its ID.
func (r *campaignRepository) FindByID(ctx context.Context, id string) (*Campaign, error) {
	query := `SELECT id, name, campaign_type, status, submission_version,
	                 brand_name, company_name, brief_images, created_at, updated_at
	          FROM campaigns WHERE id = ?`

	c := &Campaign{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.Status, &c.SubmissionVersion,
		&c.BrandName, &c.CompanyName, &c.BriefImagesJSON,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("campaign not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying campaign by id: %w", err)
	}
	return c, nil
}

// ListShortlisted returns shortlisted creators ordered by row ID so the
// first match for a duplicated name is stable.
func (r *campaignRepository) ListShortlisted(ctx context.Context, campaignID string) ([]ShortlistedCreator, error) {
	query := `SELECT creator_name, photo_url, ugc_videos, credit_per_video, status
	          FROM campaign_shortlisted
	          WHERE campaign_id = ?
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing shortlisted creators: %w", err)
	}
	defer rows.Close()

	var out []ShortlistedCreator
	for rows.Next() {
		var s ShortlistedCreator
		if err := rows.Scan(&s.CreatorName, &s.PhotoURL, &s.UGCVideos, &s.CreditPerVideo, &s.Status); err != nil {
			return nil, fmt.Errorf("scanning shortlisted creator: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shortlisted rows: %w", err)
	}
	return out, nil
}

// ListPitches returns pitches ordered by row ID.
func (r *campaignRepository) ListPitches(ctx context.Context, campaignID string) ([]Pitch, error) {
	query := `SELECT creator_name, photo_url, status
	          FROM campaign_pitches
	          WHERE campaign_id = ?
	          ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing pitches: %w", err)
	}
	defer rows.Close()

	var out []Pitch
	for rows.Next() {
		var p Pitch
		if err := rows.Scan(&p.CreatorName, &p.PhotoURL, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning pitch: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pitch rows: %w", err)
	}
	return out, nil
}
