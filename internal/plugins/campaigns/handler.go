package campaigns

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// Handler serves the campaign snapshot API.
type Handler struct {
	service CampaignService
}

// NewHandler creates a new campaigns handler.
func NewHandler(service CampaignService) *Handler {
	return &Handler{service: service}
}

// Show returns the campaign snapshot as JSON (GET /api/v1/campaigns/:id).
func (h *Handler) Show(c echo.Context) error {
	snap := GetCampaign(c)
	if snap == nil {
		return apperror.NewBadRequest("campaign context missing")
	}
	return c.JSON(http.StatusOK, snap)
}

// Info returns the detail-panel campaign summary
// (GET /api/v1/campaigns/:id/info).
func (h *Handler) Info(c echo.Context) error {
	snap := GetCampaign(c)
	if snap == nil {
		return apperror.NewBadRequest("campaign context missing")
	}
	return c.JSON(http.StatusOK, activitylog.SummarizeCampaign(snap))
}

// Refresh drops the cached snapshot (POST /api/v1/campaigns/:id/refresh).
// Backends call it after editing shortlist or pitch rows.
func (h *Handler) Refresh(c echo.Context) error {
	if err := h.service.Invalidate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
