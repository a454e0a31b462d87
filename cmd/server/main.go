// Package main is the entry point for the campaign activity log server. It
// loads configuration, connects to MariaDB and Redis, applies migrations,
// wires the plugins and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/campaignlog/internal/app"
	"github.com/keyxmakerx/campaignlog/internal/config"
	"github.com/keyxmakerx/campaignlog/internal/database"
	"github.com/keyxmakerx/campaignlog/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	setupLogging(cfg)

	slog.Info("starting campaign activity log",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	// --- Connect to MariaDB ---
	db, err := database.NewMariaDB(cfg.Database)
	if err != nil {
		slog.Error("failed to connect to MariaDB", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to MariaDB")

	if cfg.Database.MigrationsPath != "" {
		if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			slog.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// --- Connect to Redis ---
	// Redis only caches campaign snapshots, so the server starts without it.
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, campaign cache disabled", slog.Any("error", err))
			rdb = nil
		} else {
			defer rdb.Close()
			slog.Info("connected to Redis")
		}
	}

	stopStats := make(chan struct{})
	if cfg.MetricsEnabled {
		metrics.StartDBStatsCollector(db, 30*time.Second, stopStats)
	}

	application := app.New(cfg, db, rdb)
	application.RegisterRoutes()

	// --- Graceful Shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server...")
		close(stopStats)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := application.Echo.Shutdown(ctx); err != nil {
			slog.Error("server forced shutdown", slog.Any("error", err))
		}
	}()

	if err := application.Start(); err != nil {
		// Echo returns http.ErrServerClosed on graceful shutdown.
		slog.Info("server stopped", slog.Any("reason", err))
	}
}

// setupLogging configures the global slog logger. Development uses text
// output, everything else JSON. LOG_LEVEL overrides the default level.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel, cfg.IsDevelopment())}

	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string, dev bool) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if dev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
