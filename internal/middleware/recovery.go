package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/metrics"
)

// Recovery turns a handler panic into a 500 AppError for the error handler,
// so the client gets the usual JSON or HTML error body. The panic is logged
// with its stack and counted per route template.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				metrics.HTTPPanicsTotal.WithLabelValues(route).Inc()

				slog.Error("handler panicked",
					slog.Any("panic", r),
					slog.String("route", route),
					slog.String("method", c.Request().Method),
					slog.String("path", c.Request().URL.Path),
					slog.String("campaign_id", c.Param("id")),
					slog.String("stack", string(debug.Stack())),
				)
				returnErr = apperror.NewInternal(fmt.Errorf("panic in %s %s: %v", c.Request().Method, route, r))
			}()

			return next(c)
		}
	}
}
