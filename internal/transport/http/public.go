package http

import (
	"context"
	"log/slog"
	"net/http"

	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// SessionHeader carries the visitor session id set by the front end.
const SessionHeader = "X-Session-ID"

// GetPublicMagazine godoc
// @Summary Get a published magazine by slug
// @Description Hidden blocks are omitted. The view is counted in the background.
// @Tags public
// @Produce json
// @Param slug path string true "Magazine slug"
// @Success 200 {object} response.Response{data=models.Magazine}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/public/magazines/{slug} [get]
func (r *Routers) GetPublicMagazine(c echo.Context) error {
	log := r.log.With(
		slog.String("op", "http.routers.GetPublicMagazine"),
		slog.String("slug", c.Param("slug")),
	)

	m, err := r.MagazineService.GetPublished(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, log, err)
	}

	id := m.ID
	r.AnalyticsService.Dispatch("view", func(ctx context.Context) error {
		return r.MagazineService.RecordView(ctx, id)
	})

	pv := dto.PageviewRequest{
		SessionID: visitorSession(c),
		URL:       requestURL(c),
		Title:     m.Name,
		Referrer:  c.Request().Referer(),
	}
	if err := r.AnalyticsService.TrackPageview(pv, c.Request().UserAgent()); err != nil {
		log.Warn("pageview not recorded", sl.Err(err))
	}

	return ok(c, http.StatusOK, m)
}

// GetPublicMagazineJSONLD godoc
// @Summary Schema.org graph of a published magazine
// @Tags public
// @Produce json
// @Param slug path string true "Magazine slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/public/magazines/{slug}/jsonld [get]
func (r *Routers) GetPublicMagazineJSONLD(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetPublicMagazineJSONLD"))

	doc, err := r.MagazineService.JSONLD(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusOK, doc)
}

// GetPublicChildPage godoc
// @Summary Get a published child page of a published magazine
// @Tags public
// @Produce json
// @Param slug path string true "Magazine slug"
// @Param pageSlug path string true "Child page slug"
// @Success 200 {object} response.Response{data=models.ChildPage}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/public/magazines/{slug}/pages/{pageSlug} [get]
func (r *Routers) GetPublicChildPage(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetPublicChildPage"))

	page, err := r.ChildPageService.GetPublished(c.Request().Context(), c.Param("slug"), c.Param("pageSlug"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// RecordAdView godoc
// @Summary Count an ad impression
// @Tags public
// @Param id path string true "Ad id" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/public/ads/{id}/view [post]
func (r *Routers) RecordAdView(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.RecordAdView"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.AdService.RecordView(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordAdClick godoc
// @Summary Count an ad click
// @Tags public
// @Param id path string true "Ad id" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/public/ads/{id}/click [post]
func (r *Routers) RecordAdClick(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.RecordAdClick"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.AdService.RecordClick(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func visitorSession(c echo.Context) string {
	if id := c.Request().Header.Get(SessionHeader); id != "" {
		return id
	}
	return c.RealIP()
}

func requestURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().URL.RequestURI()
}
