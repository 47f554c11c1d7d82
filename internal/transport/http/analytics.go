package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// TrackPageview godoc
// @Summary Record a pageview
// @Description The hit is stored in the background; the response does not wait for it.
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.PageviewRequest true "Pageview"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/analytics/pageview [post]
func (r *Routers) TrackPageview(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.TrackPageview"))

	var req dto.PageviewRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	if err := r.AnalyticsService.TrackPageview(req, c.Request().UserAgent()); err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusAccepted, response.Response{Status: "success"})
}

// TrackEvent godoc
// @Summary Record a custom event
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body dto.EventRequest true "Event"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/analytics/event [post]
func (r *Routers) TrackEvent(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.TrackEvent"))

	var req dto.EventRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	if err := r.AnalyticsService.TrackEvent(req, c.Request().UserAgent()); err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusAccepted, response.Response{Status: "success"})
}

// AnalyticsOverview godoc
// @Summary Traffic totals for the last days
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} response.Response{data=models.AnalyticsOverview}
// @Security ApiKeyAuth
// @Router /api/v1/analytics/overview [get]
func (r *Routers) AnalyticsOverview(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.AnalyticsOverview"))

	overview, err := r.AnalyticsService.Overview(c.Request().Context(), queryInt(c, "days", 0))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, overview)
}

// AnalyticsTrend godoc
// @Summary Pageviews and sessions per day, oldest first
// @Tags analytics
// @Produce json
// @Param days query int false "Window in days" default(30)
// @Success 200 {object} response.Response{data=[]models.DayCount}
// @Security ApiKeyAuth
// @Router /api/v1/analytics/trend [get]
func (r *Routers) AnalyticsTrend(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.AnalyticsTrend"))

	trend, err := r.AnalyticsService.Trend(c.Request().Context(), queryInt(c, "days", 0))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, trend)
}

// AnalyticsTopPages godoc
// @Summary Most viewed paths
// @Tags analytics
// @Produce json
// @Param limit query int false "Number of paths" default(10)
// @Success 200 {object} response.Response{data=[]models.PageCount}
// @Security ApiKeyAuth
// @Router /api/v1/analytics/top-pages [get]
func (r *Routers) AnalyticsTopPages(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.AnalyticsTopPages"))

	pages, err := r.AnalyticsService.TopPages(c.Request().Context(), queryInt(c, "limit", 0))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, pages)
}
