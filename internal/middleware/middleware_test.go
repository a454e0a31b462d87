package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/metrics"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireIngestKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing key: %v", err)
	}
	h := RequireIngestKey(string(hash))(okHandler)

	tests := []struct {
		name     string
		key      string
		wantCode int
	}{
		{"valid key", "s3cret", http.StatusOK},
		{"wrong key", "guess", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/c1/logs", nil)
			if tt.key != "" {
				req.Header.Set(HeaderIngestKey, tt.key)
			}
			c, rec := newContext(req)

			err := h(c)
			if tt.wantCode == http.StatusOK {
				if err != nil || rec.Code != http.StatusOK {
					t.Fatalf("got err=%v code=%d, want 200", err, rec.Code)
				}
				return
			}
			if code := apperror.SafeCode(err); code != tt.wantCode {
				t.Errorf("SafeCode = %d, want %d (err=%v)", code, tt.wantCode, err)
			}
		})
	}
}

func TestRequireIngestKey_DisabledWithoutHash(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	if err := RequireIngestKey("")(okHandler)(c); err != nil || rec.Code != http.StatusOK {
		t.Errorf("got err=%v code=%d, want pass-through", err, rec.Code)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	l := &rateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxRequests: 2,
		window:      time.Minute,
		now:         func() time.Time { return now },
	}

	if !l.allow("10.0.0.1") || !l.allow("10.0.0.1") {
		t.Fatal("first two requests should pass")
	}
	if l.allow("10.0.0.1") {
		t.Error("third request in window should be limited")
	}
	if !l.allow("10.0.0.2") {
		t.Error("other IPs have their own budget")
	}

	now = now.Add(61 * time.Second)
	if !l.allow("10.0.0.1") {
		t.Error("new window should reset the budget")
	}

	now = now.Add(3 * time.Minute)
	l.sweep()
	if len(l.entries) != 0 {
		t.Errorf("sweep left %d entries", len(l.entries))
	}
}

func TestRateLimit_Returns429(t *testing.T) {
	h := RateLimit(1, time.Minute)(okHandler)

	c, _ := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	if err := h(c); err != nil {
		t.Fatalf("first request: %v", err)
	}
	c, _ = newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	if code := apperror.SafeCode(h(c)); code != http.StatusTooManyRequests {
		t.Errorf("second request code = %d, want 429", code)
	}
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	h := Recovery()(func(c echo.Context) error { panic("boom") })
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/c1/logs", nil))
	c.SetPath("/api/v1/campaigns/:id/logs")
	c.SetParamNames("id")
	c.SetParamValues("c1")

	counter := metrics.HTTPPanicsTotal.WithLabelValues("/api/v1/campaigns/:id/logs")
	before := testutil.ToFloat64(counter)

	err := h(c)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v, want internal AppError", err)
	}
	if appErr.Message == "boom" {
		t.Error("panic value leaked into the client message")
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("panic counter delta = %v, want 1", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	if err := SecurityHeaders()(okHandler)(c); err != nil {
		t.Fatal(err)
	}
	for _, h := range []string{"Content-Security-Policy", "X-Content-Type-Options", "X-Frame-Options"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}
}

func TestTrustedProxies(t *testing.T) {
	e := echo.New()
	TrustedProxies(e, []string{"10.0.0.0/8", "not-a-cidr"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set(echo.HeaderXForwardedFor, "203.0.113.7")
	if got := e.IPExtractor(req); got != "203.0.113.7" {
		t.Errorf("trusted proxy: RealIP = %q, want client IP", got)
	}

	req.RemoteAddr = "198.51.100.9:5555"
	if got := e.IPExtractor(req); got != "198.51.100.9" {
		t.Errorf("untrusted peer: RealIP = %q, want peer IP", got)
	}
}
