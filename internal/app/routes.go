package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keyxmakerx/campaignlog/internal/middleware"
	"github.com/keyxmakerx/campaignlog/internal/plugins/activity"
	"github.com/keyxmakerx/campaignlog/internal/plugins/campaigns"
	"github.com/keyxmakerx/campaignlog/internal/templates/layouts"
)

// RegisterRoutes sets up every route: health and metrics, then the
// campaigns and activity plugins.
func (a *App) RegisterRoutes() {
	e := a.Echo

	e.GET("/healthz", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := a.checkHealth(ctx)
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, status)
	})

	if a.Config.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	// --- Layout data for templ pages ---
	middleware.LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
		ctx = layouts.SetActivePath(ctx, c.Request().URL.Path)
		if snap := campaigns.GetCampaign(c); snap != nil {
			ctx = layouts.SetCampaignID(ctx, snap.ID)
			ctx = layouts.SetCampaignName(ctx, snap.Name)
		}
		return ctx
	}

	// --- Plugins ---
	var cache campaigns.SnapshotCache
	if a.Redis != nil {
		cache = campaigns.NewRedisSnapshotCache(a.Redis, a.Config.Redis.CampaignCacheTTL)
	}
	campaignSvc := campaigns.NewCampaignService(campaigns.NewCampaignRepository(a.DB), cache)

	activitySvc := activity.NewActivityService(activity.NewLogRepository(a.DB), a.Config.Feed.PageSize)

	api := e.Group("/api/v1", middleware.APICORS([]string{a.Config.BaseURL}))
	ingestAuth := middleware.RequireIngestKey(a.Config.Ingest.KeyHash)

	campaigns.RegisterRoutes(api, campaigns.NewHandler(campaignSvc), campaignSvc, ingestAuth)
	activity.RegisterRoutes(e, api, activity.NewHandler(activitySvc), campaignSvc,
		middleware.RateLimit(a.Config.Ingest.RateLimit, a.Config.Ingest.RateWindow),
		ingestAuth,
	)
}
