package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// rateLimitEntry tracks request counts for a single IP within a time window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// rateLimiter is a fixed-window per-IP counter held in memory.
type rateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// allow records one request from ip and reports whether it is within budget.
func (l *rateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[ip]
	if !ok || now.Sub(entry.windowStart) > l.window {
		l.entries[ip] = &rateLimitEntry{count: 1, windowStart: now}
		return true
	}
	entry.count++
	return entry.count <= l.maxRequests
}

// sweep drops entries whose window ended more than one window ago.
func (l *rateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for ip, entry := range l.entries {
		if now.Sub(entry.windowStart) > l.window*2 {
			delete(l.entries, ip)
		}
	}
}

// RateLimit returns middleware that allows at most maxRequests per client IP
// within window and answers 429 beyond that. A non-positive maxRequests
// disables limiting.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	if maxRequests <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	l := &rateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			l.sweep()
		}
	}()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.allow(c.RealIP()) {
				return apperror.NewTooManyRequests("rate limit exceeded, please try again later")
			}
			return next(c)
		}
	}
}
