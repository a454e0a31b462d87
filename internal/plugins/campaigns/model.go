// Package campaigns loads the campaign records that log context is resolved
// against: the campaign row, its shortlisted creators and its pitches. The
// three are assembled into an activitylog.Campaign snapshot, which is cached
// in Redis because every context lookup on a busy campaign needs it.
//
// This plugin is read-only. Campaign rows are written by the marketplace
// backend; this service only shares its database.
package campaigns

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

// Campaign is a row of the campaigns table.
type Campaign struct {
	ID                string
	Name              string
	Type              string
	Status            string
	SubmissionVersion string
	BrandName         sql.NullString
	CompanyName       sql.NullString

	// BriefImagesJSON is the raw brief_images column, a JSON array of URLs.
	BriefImagesJSON sql.NullString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BriefImages decodes the brief_images column. Malformed JSON yields no
// images rather than an error; the brief image is decoration only.
func (c *Campaign) BriefImages() []string {
	if !c.BriefImagesJSON.Valid || c.BriefImagesJSON.String == "" {
		return nil
	}
	var images []string
	if err := json.Unmarshal([]byte(c.BriefImagesJSON.String), &images); err != nil {
		return nil
	}
	return images
}

// ShortlistedCreator is a row of campaign_shortlisted.
type ShortlistedCreator struct {
	CreatorName    string
	PhotoURL       string
	UGCVideos      int
	CreditPerVideo float64
	Status         string
}

// Pitch is a row of campaign_pitches.
type Pitch struct {
	CreatorName string
	PhotoURL    string
	Status      string
}

// Snapshot assembles the read-only campaign view the context extractor
// works on. Brand and Company stay nil when their columns are NULL or empty.
func Snapshot(c *Campaign, shortlisted []ShortlistedCreator, pitches []Pitch) *activitylog.Campaign {
	snap := &activitylog.Campaign{
		ID:                c.ID,
		Name:              c.Name,
		Type:              c.Type,
		Status:            c.Status,
		SubmissionVersion: c.SubmissionVersion,
		Brief:             activitylog.CampaignBrief{Images: c.BriefImages()},
		Brand:             organization(c.BrandName),
		Company:           organization(c.CompanyName),
		Shortlisted:       make([]activitylog.ShortlistedCreator, 0, len(shortlisted)),
		Pitches:           make([]activitylog.Pitch, 0, len(pitches)),
	}

	for _, s := range shortlisted {
		snap.Shortlisted = append(snap.Shortlisted, activitylog.ShortlistedCreator{
			User:           activitylog.CreatorUser{Name: s.CreatorName, PhotoURL: s.PhotoURL},
			UGCVideos:      s.UGCVideos,
			CreditPerVideo: s.CreditPerVideo,
			Status:         s.Status,
		})
	}
	for _, p := range pitches {
		snap.Pitches = append(snap.Pitches, activitylog.Pitch{
			User:   activitylog.CreatorUser{Name: p.CreatorName, PhotoURL: p.PhotoURL},
			Status: p.Status,
		})
	}

	return snap
}

func organization(name sql.NullString) *activitylog.Organization {
	if !name.Valid || name.String == "" {
		return nil
	}
	return &activitylog.Organization{Name: name.String}
}
