package campaigns

import (
	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
)

// contextKeyCampaign is the Echo context key for the campaign snapshot.
const contextKeyCampaign = "campaign_snapshot"

// RequireCampaign returns middleware that resolves the campaign from the :id
// URL parameter and stores its snapshot in the Echo context. Unknown
// campaigns end the request with 404.
func RequireCampaign(service CampaignService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			campaignID := c.Param("id")
			if campaignID == "" {
				return apperror.NewBadRequest("campaign ID is required")
			}

			snap, err := service.GetSnapshot(c.Request().Context(), campaignID)
			if err != nil {
				return err
			}

			c.Set(contextKeyCampaign, snap)
			return next(c)
		}
	}
}

// GetCampaign returns the snapshot stored by RequireCampaign, or nil when
// the middleware was not applied.
func GetCampaign(c echo.Context) *activitylog.Campaign {
	snap, ok := c.Get(contextKeyCampaign).(*activitylog.Campaign)
	if !ok {
		return nil
	}
	return snap
}
