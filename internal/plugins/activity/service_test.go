package activity

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// --- Mock Repository ---

type mockLogRepo struct {
	logFn  func(ctx context.Context, campaignID string, entry *activitylog.LogEntry) error
	listFn func(ctx context.Context, campaignID string, limit int) ([]activitylog.LogEntry, error)
	findFn func(ctx context.Context, campaignID, logID string) (*activitylog.LogEntry, error)
	logged []activitylog.LogEntry
}

func (m *mockLogRepo) Log(ctx context.Context, campaignID string, entry *activitylog.LogEntry) error {
	if m.logFn != nil {
		return m.logFn(ctx, campaignID, entry)
	}
	m.logged = append(m.logged, *entry)
	return nil
}

func (m *mockLogRepo) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]activitylog.LogEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, campaignID, limit)
	}
	return m.logged, nil
}

func (m *mockLogRepo) FindByID(ctx context.Context, campaignID, logID string) (*activitylog.LogEntry, error) {
	if m.findFn != nil {
		return m.findFn(ctx, campaignID, logID)
	}
	for _, e := range m.logged {
		if e.ID == logID {
			return &e, nil
		}
	}
	return nil, apperror.NewNotFound("log entry not found")
}

var fixedNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func newTestService(repo LogRepository, perPage int) *activityService {
	svc := NewActivityService(repo, perPage).(*activityService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// feedEntries is a campaign's log, most recent first.
func feedEntries() []activitylog.LogEntry {
	today := fixedNow.Add(-time.Hour)
	yesterday := fixedNow.AddDate(0, 0, -1)
	return []activitylog.LogEntry{
		{ID: "6", Action: `Invoice INV-7 for "Jane Doe" was generated`, CreatedAt: today, PerformerRole: activitylog.RoleUnspecified},
		{ID: "5", Action: `Creator "Jane Doe" submitted a pitch`, PerformedBy: "Jane Doe", CreatedAt: today, PerformerRole: activitylog.RoleCreator},
		{ID: "4", Action: `Approved the pitch of "Omar Khan"`, PerformedBy: "Sam Lee", CreatedAt: today, PerformerRole: activitylog.RoleAdmin},
		{ID: "3", Action: "Campaign activated", PerformedBy: "Glow Co", CreatedAt: yesterday, PerformerRole: activitylog.RoleClient},
		{ID: "2", Action: "Sam Lee logged in", PerformedBy: "Sam Lee", CreatedAt: yesterday, PerformerRole: activitylog.RoleAdmin},
		{ID: "1", Action: "Viewed analytics", PerformedBy: "Glow Co", CreatedAt: time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC), PerformerRole: activitylog.RoleClient},
	}
}

func TestRecord_SanitizesAndClassifies(t *testing.T) {
	repo := &mockLogRepo{}
	svc := newTestService(repo, 50)

	got, err := svc.Record(context.Background(), "c1", RecordInput{
		Action:        `  Creator <b>"Jane Doe"</b> submitted a pitch<script>x()</script> `,
		PerformedBy:   "Jane Doe",
		PerformerRole: "creator",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if got.Action != `Creator "Jane Doe" submitted a pitch` {
		t.Errorf("Action = %q, want sanitized text", got.Action)
	}
	if got.Category != activitylog.CategoryPitch {
		t.Errorf("Category = %q, want Pitch", got.Category)
	}
	if got.ID == "" || len(got.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", got.ID)
	}
	if !got.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want ingestion time", got.CreatedAt)
	}
	if len(repo.logged) != 1 || repo.logged[0].ID != got.ID {
		t.Errorf("stored %+v", repo.logged)
	}
}

func TestRecord_KeepsSuppliedTimestamp(t *testing.T) {
	repo := &mockLogRepo{}
	svc := newTestService(repo, 50)
	at := time.Date(2026, 10, 18, 8, 0, 0, 123456789, time.FixedZone("UTC+8", 8*3600))

	got, err := svc.Record(context.Background(), "c1", RecordInput{Action: "Campaign activated", CreatedAt: &at})
	if err != nil {
		t.Fatal(err)
	}
	if want := at.Truncate(time.Millisecond); !got.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want)
	}
	if got.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", got.CreatedAt.Location())
	}
	if got.PerformerRole != activitylog.RoleUnspecified {
		t.Errorf("PerformerRole = %q, want unspecified", got.PerformerRole)
	}
}

func TestRecord_Validation(t *testing.T) {
	tests := []struct {
		name       string
		campaignID string
		action     string
		wantCode   int
	}{
		{"empty action", "c1", "", http.StatusUnprocessableEntity},
		{"markup only", "c1", "<img src=x>", http.StatusUnprocessableEntity},
		{"too long", "c1", strings.Repeat("a", maxActionLength+1), http.StatusUnprocessableEntity},
		{"too many multibyte characters", "c1", strings.Repeat("審", maxActionLength+1), http.StatusUnprocessableEntity},
		{"missing campaign", "", "Campaign activated", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockLogRepo{}
			_, err := newTestService(repo, 50).Record(context.Background(), tt.campaignID, RecordInput{Action: tt.action})
			if code := apperror.SafeCode(err); code != tt.wantCode {
				t.Errorf("code = %d, want %d (err=%v)", code, tt.wantCode, err)
			}
			if len(repo.logged) != 0 {
				t.Error("invalid input was stored")
			}
		})
	}
}

func TestRecord_RepositoryError(t *testing.T) {
	repo := &mockLogRepo{logFn: func(context.Context, string, *activitylog.LogEntry) error {
		return errors.New("deadlock")
	}}
	_, err := newTestService(repo, 50).Record(context.Background(), "c1", RecordInput{Action: "Campaign activated"})
	if code := apperror.SafeCode(err); code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
}

func TestGetFeed_CountsFilterAndDays(t *testing.T) {
	repo := &mockLogRepo{logged: feedEntries()}
	svc := newTestService(repo, 50)

	feed, err := svc.GetFeed(context.Background(), "c1", activitylog.TabAll, 1)
	if err != nil {
		t.Fatalf("GetFeed() error = %v", err)
	}

	wantCounts := activitylog.TabCounts{
		activitylog.TabAll:     6,
		activitylog.TabAdmin:   2, // pitch approval, admin login
		activitylog.TabCreator: 1,
		activitylog.TabClient:  2,
		activitylog.TabInvoice: 1,
	}
	if diff := cmp.Diff(wantCounts, feed.Counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}
	if feed.Total != 6 || len(feed.Logs) != 6 {
		t.Errorf("Total = %d, len(Logs) = %d, want 6", feed.Total, len(feed.Logs))
	}

	var labels []string
	for _, d := range feed.Days {
		labels = append(labels, d.Label)
	}
	if diff := cmp.Diff([]string{"Today", "Yesterday", "OCT 1, 2026"}, labels); diff != "" {
		t.Errorf("day labels mismatch (-want +got):\n%s", diff)
	}

	client, err := svc.GetFeed(context.Background(), "c1", activitylog.TabClient, 1)
	if err != nil {
		t.Fatal(err)
	}
	if client.Total != feed.Counts[activitylog.TabClient] {
		t.Errorf("client tab Total = %d, count = %d", client.Total, feed.Counts[activitylog.TabClient])
	}
	for _, l := range client.Logs {
		if !l.HasGroup(activitylog.GroupClient) {
			t.Errorf("log %s in client tab without client group", l.ID)
		}
	}
}

func TestGetFeed_Pagination(t *testing.T) {
	repo := &mockLogRepo{logged: feedEntries()}
	svc := newTestService(repo, 4)

	tests := []struct {
		page     int
		wantPage int
		wantIDs  []string
	}{
		{1, 1, []string{"6", "5", "4", "3"}},
		{2, 2, []string{"2", "1"}},
		{0, 1, []string{"6", "5", "4", "3"}},
		{9, 2, []string{"2", "1"}},
	}

	for _, tt := range tests {
		feed, err := svc.GetFeed(context.Background(), "c1", activitylog.TabAll, tt.page)
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, l := range feed.Logs {
			ids = append(ids, l.ID)
		}
		if feed.Page != tt.wantPage || !cmp.Equal(ids, tt.wantIDs) {
			t.Errorf("page %d: got page %d ids %v, want page %d ids %v", tt.page, feed.Page, ids, tt.wantPage, tt.wantIDs)
		}
		if feed.TotalPages() != 2 {
			t.Errorf("TotalPages() = %d, want 2", feed.TotalPages())
		}
	}
}

func TestGetFeed_Empty(t *testing.T) {
	feed, err := newTestService(&mockLogRepo{}, 10).GetFeed(context.Background(), "c1", activitylog.TabInvoice, 3)
	if err != nil {
		t.Fatal(err)
	}
	if feed.Page != 1 || len(feed.Logs) != 0 || len(feed.Days) != 0 || feed.Counts[activitylog.TabAll] != 0 {
		t.Errorf("empty feed = %+v", feed)
	}
}

func TestGetFeed_RepositoryError(t *testing.T) {
	repo := &mockLogRepo{listFn: func(context.Context, string, int) ([]activitylog.LogEntry, error) {
		return nil, errors.New("timeout")
	}}
	_, err := newTestService(repo, 10).GetFeed(context.Background(), "c1", activitylog.TabAll, 1)
	if code := apperror.SafeCode(err); code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", code)
	}
}

func TestGetLogDetail(t *testing.T) {
	repo := &mockLogRepo{logged: feedEntries()}
	svc := newTestService(repo, 10)
	campaign := &activitylog.Campaign{
		ID:   "c1",
		Name: "Glow Summer",
		Shortlisted: []activitylog.ShortlistedCreator{
			{User: activitylog.CreatorUser{Name: "Jane Doe"}, UGCVideos: 3, CreditPerVideo: 150, Status: "APPROVED"},
		},
	}

	detail, err := svc.GetLogDetail(context.Background(), campaign, "6")
	if err != nil {
		t.Fatalf("GetLogDetail() error = %v", err)
	}
	if detail.Context.Invoice == nil || detail.Context.Invoice.InvoiceNumber != "INV-7" {
		t.Errorf("Invoice = %+v", detail.Context.Invoice)
	}
	if detail.Context.Creator == nil || detail.Context.Creator.Source != activitylog.SourceShortlisted {
		t.Errorf("Creator = %+v, want shortlisted Jane Doe", detail.Context.Creator)
	}
	if len(detail.Segments) == 0 {
		t.Error("Segments empty")
	}

	if _, err := svc.GetLogDetail(context.Background(), campaign, "missing"); !apperror.IsNotFound(err) {
		t.Errorf("missing log error = %v, want not found", err)
	}
	if _, err := svc.GetLogDetail(context.Background(), nil, "6"); apperror.SafeCode(err) != http.StatusBadRequest {
		t.Errorf("nil campaign error = %v, want bad request", err)
	}
}

func TestRecord_LengthCountsCharacters(t *testing.T) {
	repo := &mockLogRepo{}
	action := strings.Repeat("審", maxActionLength)

	if _, err := newTestService(repo, 50).Record(context.Background(), "c1", RecordInput{Action: action}); err != nil {
		t.Fatalf("Record() with %d characters (%d bytes) error = %v", maxActionLength, len(action), err)
	}
	if len(repo.logged) != 1 {
		t.Errorf("stored %d entries, want 1", len(repo.logged))
	}
}

func TestGetFeed_DayLabelsUseUTC(t *testing.T) {
	// 20:00 UTC is 04:00 the next day at UTC+8.
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)
	repo := &mockLogRepo{logged: []activitylog.LogEntry{
		{ID: "2", Action: "Campaign activated", CreatedAt: now.Add(-time.Minute)},
		{ID: "1", Action: "Campaign paused", CreatedAt: now.Add(-21 * time.Hour)},
	}}
	svc := newTestService(repo, 10)
	svc.now = func() time.Time { return now.In(time.FixedZone("UTC+8", 8*3600)) }

	feed, err := svc.GetFeed(context.Background(), "c1", activitylog.TabAll, 1)
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	for _, d := range feed.Days {
		labels = append(labels, d.Label)
	}
	if diff := cmp.Diff([]string{"Today", "Yesterday"}, labels); diff != "" {
		t.Errorf("day labels (-want +got):\n%s", diff)
	}
}
