// Package app is the application bootstrap and dependency injection root.
// It holds the shared infrastructure (DB pool, Redis client, Echo instance)
// and wires the campaigns and activity plugins together.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/config"
	"github.com/keyxmakerx/campaignlog/internal/middleware"
	"github.com/keyxmakerx/campaignlog/internal/templates/pages"
)

// App holds all shared dependencies and the Echo HTTP server instance.
type App struct {
	Config *config.Config

	// DB is the MariaDB connection pool shared by all plugins.
	DB *sql.DB

	// Redis caches campaign snapshots. Nil disables caching.
	Redis *redis.Client

	Echo *echo.Echo
}

// New creates the App and configures Echo with global middleware and the
// error handler.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Backends reach the ingest endpoint through the cluster ingress.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fd00::/8",
	})

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
	}

	app.setupMiddleware()
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware. The request logger is
// outermost so recovered panics are still logged with their final status.
func (a *App) setupMiddleware() {
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.Recovery())
	a.Echo.Use(middleware.SecurityHeaders())
}

// errorHandler maps domain errors (AppError) and Echo HTTP errors to
// responses: JSON under /api, an HTML error page everywhere else.
func (a *App) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := defaultErrorMessage(code)

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = defaultErrorMessage(code)
		}
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
		)
	}

	if isAPIRequest(c) {
		_ = c.JSON(code, map[string]string{
			"error":   http.StatusText(code),
			"message": message,
		})
		return
	}

	if err := middleware.Render(c, code, pages.ErrorPage(code, message)); err != nil {
		slog.Error("rendering error page", slog.Any("error", err))
	}
}

// defaultErrorMessage returns a user-facing message for status codes that
// arrive without one.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusUnauthorized:
		return "A valid ingest key is required."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusUnprocessableEntity:
		return "The submitted data could not be processed."
	case http.StatusTooManyRequests:
		return "You're making too many requests. Please slow down."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong on our end. Please try again."
	}
}

// isAPIRequest returns true if the request targets the JSON API.
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// checkHealth pings MariaDB and, when configured, Redis.
func (a *App) checkHealth(ctx context.Context) map[string]string {
	status := map[string]string{"status": "ok", "database": "ok"}
	if a.DB == nil {
		status["database"] = "not configured"
	} else if err := a.DB.PingContext(ctx); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
	}
	if a.Redis != nil {
		status["redis"] = "ok"
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			// Redis only caches; losing it degrades but does not fail.
			status["redis"] = err.Error()
		}
	}
	return status
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting campaign activity log server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
