package activity

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/plugins/campaigns"
)

// RegisterRoutes sets up the activity routes. api is the /api/v1 group;
// ingest guards the write endpoint (ingest key plus rate limit).
// Every route resolves the campaign first, so unknown IDs answer 404.
func RegisterRoutes(e *echo.Echo, api *echo.Group, h *Handler, campaignSvc campaigns.CampaignService, ingest ...echo.MiddlewareFunc) {
	requireCampaign := campaigns.RequireCampaign(campaignSvc)

	logs := api.Group("/campaigns/:id/logs")
	logs.POST("", h.Record, append(ingest, requireCampaign)...)
	logs.GET("", h.Feed, requireCampaign)
	logs.GET("/:logId/context", h.Context, requireCampaign)

	e.GET("/campaigns/:id/activity", h.Activity, requireCampaign)
}
