// Package middleware provides HTTP middleware for the activity log server.
// Middleware is applied globally or per route group; see
// internal/app/routes.go for registration.
package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/metrics"
)

// RequestLogger returns middleware that logs every HTTP request with
// structured fields (method, path, status, latency, remote IP) and records
// the request in the Prometheus HTTP collectors.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Run the error handler now so the logged status is the one
				// the client actually receives.
				c.Error(err)
			}

			latency := time.Since(start)
			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", latency),
				slog.String("remote_ip", c.RealIP()),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}

			level := slog.LevelInfo
			if res.Status >= 500 {
				level = slog.LevelError
			} else if res.Status >= 400 {
				level = slog.LevelWarn
			}
			slog.LogAttrs(req.Context(), level, "request", attrs...)

			// Unmatched routes have no template; bucket them together.
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestsTotal.WithLabelValues(req.Method, route, strconv.Itoa(res.Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(req.Method, route).Observe(latency.Seconds())

			return nil
		}
	}
}
