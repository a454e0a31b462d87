// Package activity stores the raw log lines backends emit for a campaign and
// serves them back classified, formatted, grouped by tab and by day. The
// classification itself lives in internal/activitylog; this plugin owns the
// campaign_logs table, the ingest endpoint and the timeline page.
package activity

import (
	"time"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

// RecordInput is the body of POST /api/v1/campaigns/:id/logs.
type RecordInput struct {
	Action        string `json:"action"`
	PerformedBy   string `json:"performedBy"`
	PerformerRole string `json:"performerRole"`

	// CreatedAt defaults to the time of ingestion when omitted.
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Feed is one page of a campaign's timeline under a tab.
type Feed struct {
	CampaignID string                      `json:"campaignId"`
	Tab        activitylog.Tab             `json:"tab"`
	Page       int                         `json:"page"`
	PerPage    int                         `json:"perPage"`
	Total      int                         `json:"total"`
	Counts     activitylog.TabCounts       `json:"counts"`
	Logs       []activitylog.ClassifiedLog `json:"logs"`
	Days       []activitylog.DateGroup     `json:"days"`
}

// TotalPages returns the page count for Total at PerPage, at least 1.
func (f *Feed) TotalPages() int {
	if f.PerPage <= 0 || f.Total == 0 {
		return 1
	}
	return (f.Total + f.PerPage - 1) / f.PerPage
}

// LogDetail is one entry with its extracted context, as shown in the
// detail panel.
type LogDetail struct {
	Log      activitylog.ClassifiedLog `json:"log"`
	Context  activitylog.LogContext    `json:"context"`
	Segments []activitylog.Segment     `json:"segments"`
}
