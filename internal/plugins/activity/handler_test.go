package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// stubCampaigns implements campaigns.CampaignService with a fixed campaign.
type stubCampaigns struct{}

func (stubCampaigns) GetSnapshot(_ context.Context, id string) (*activitylog.Campaign, error) {
	if id != "c1" {
		return nil, apperror.NewNotFound("campaign not found")
	}
	return &activitylog.Campaign{ID: "c1", Name: "Glow Summer"}, nil
}

func (stubCampaigns) Invalidate(context.Context, string) error { return nil }

// newTestServer wires the activity routes with a JSON error handler.
func newTestServer(repo *mockLogRepo) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, map[string]any{"message": he.Message})
			return
		}
		_ = c.JSON(apperror.SafeCode(err), map[string]string{"message": apperror.SafeMessage(err)})
	}

	h := NewHandler(newTestService(repo, 50))
	RegisterRoutes(e, e.Group("/api/v1"), h, stubCampaigns{})
	return e
}

func TestHandler_Record(t *testing.T) {
	repo := &mockLogRepo{}
	e := newTestServer(repo)

	body := `{"action":"Creator \"Jane Doe\" submitted a pitch","performedBy":"Jane Doe","performerRole":"creator"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/c1/logs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got activitylog.ClassifiedLog
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Category != activitylog.CategoryPitch || got.FormattedAction != `"Jane Doe" submitted a pitch` {
		t.Errorf("got %+v", got)
	}
}

func TestHandler_RecordErrors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{"empty action", "/api/v1/campaigns/c1/logs", `{"action":"   "}`, http.StatusUnprocessableEntity},
		{"bad json", "/api/v1/campaigns/c1/logs", `{"action":`, http.StatusBadRequest},
		{"unknown campaign", "/api/v1/campaigns/c9/logs", `{"action":"Campaign activated"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&mockLogRepo{})
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body)
			}
		})
	}
}

func TestHandler_FeedAndContext(t *testing.T) {
	repo := &mockLogRepo{logged: feedEntries()}
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c1/logs?tab=client", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d", rec.Code)
	}
	var feed Feed
	if err := json.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatal(err)
	}
	if feed.Tab != activitylog.TabClient || feed.Total != 2 {
		t.Errorf("feed tab = %q total = %d, want client/2", feed.Tab, feed.Total)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c1/logs/3/context", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("context status = %d", rec.Code)
	}
	var detail LogDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Context.CampaignInfo == nil || detail.Context.CampaignInfo.Name != "Glow Summer" {
		t.Errorf("CampaignInfo = %+v", detail.Context.CampaignInfo)
	}
}

func TestHandler_ActivityPage(t *testing.T) {
	e := newTestServer(&mockLogRepo{logged: feedEntries()})

	req := httptest.NewRequest(http.MethodGet, "/campaigns/c1/activity?tab=admin", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	out := rec.Body.String()
	for _, want := range []string{`class="active">Admin (2)`, "<strong>Omar Khan</strong>", ">approved</span>", "Today"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
