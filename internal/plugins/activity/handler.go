package activity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
	"github.com/keyxmakerx/campaignlog/internal/apperror"
	"github.com/keyxmakerx/campaignlog/internal/middleware"
	"github.com/keyxmakerx/campaignlog/internal/plugins/campaigns"
)

// Handler handles HTTP requests for campaign logs. Handlers are thin: bind
// request, call service, render response.
type Handler struct {
	service ActivityService
}

// NewHandler creates a new activity handler.
func NewHandler(service ActivityService) *Handler {
	return &Handler{service: service}
}

// Record stores a log line (POST /api/v1/campaigns/:id/logs).
func (h *Handler) Record(c echo.Context) error {
	var input RecordInput
	if err := c.Bind(&input); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	log, err := h.service.Record(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, log)
}

// Feed returns one timeline page as JSON
// (GET /api/v1/campaigns/:id/logs?tab=&page=).
func (h *Handler) Feed(c echo.Context) error {
	feed, err := h.feed(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feed)
}

// Context returns one entry with its extracted context
// (GET /api/v1/campaigns/:id/logs/:logId/context).
func (h *Handler) Context(c echo.Context) error {
	detail, err := h.service.GetLogDetail(c.Request().Context(), campaigns.GetCampaign(c), c.Param("logId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Activity renders the timeline page (GET /campaigns/:id/activity).
func (h *Handler) Activity(c echo.Context) error {
	feed, err := h.feed(c)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, ActivityPage(feed))
}

func (h *Handler) feed(c echo.Context) (*Feed, error) {
	tab := activitylog.ParseTab(c.QueryParam("tab"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	return h.service.GetFeed(c.Request().Context(), c.Param("id"), tab, page)
}
