package campaigns

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the campaign API on api (the /api/v1 group).
// ingestAuth guards the cache refresh endpoint with the ingest key.
func RegisterRoutes(api *echo.Group, h *Handler, svc CampaignService, ingestAuth echo.MiddlewareFunc) {
	cg := api.Group("/campaigns/:id")

	cg.GET("", h.Show, RequireCampaign(svc))
	cg.GET("/info", h.Info, RequireCampaign(svc))
	cg.POST("/refresh", h.Refresh, ingestAuth)
}
