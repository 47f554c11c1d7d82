package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// ListAds godoc
// @Summary List ads
// @Description status=active returns ads running now; all or empty returns everything.
// @Tags ads
// @Produce json
// @Param status query string false "draft, scheduled, active, expired or all"
// @Success 200 {object} response.Response{data=[]models.Ad}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads [get]
func (r *Routers) ListAds(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ListAds"))

	ads, err := r.AdService.ListAds(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, ads)
}

// CreateAd godoc
// @Summary Create an ad
// @Tags ads
// @Accept json
// @Produce json
// @Param request body dto.AdRequest true "Ad"
// @Success 201 {object} response.Response{data=models.Ad}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads [post]
func (r *Routers) CreateAd(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.CreateAd"))

	var req dto.AdRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	ad, err := r.AdService.CreateAd(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, ad)
}

// GetAd godoc
// @Summary Get an ad
// @Tags ads
// @Produce json
// @Param id path string true "Ad id" format(uuid)
// @Success 200 {object} response.Response{data=models.Ad}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads/{id} [get]
func (r *Routers) GetAd(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetAd"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	ad, err := r.AdService.GetAd(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, ad)
}

// UpdateAd godoc
// @Summary Replace an ad
// @Description Delivery counters are kept.
// @Tags ads
// @Accept json
// @Produce json
// @Param id path string true "Ad id" format(uuid)
// @Param request body dto.AdRequest true "Ad"
// @Success 200 {object} response.Response{data=models.Ad}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads/{id} [put]
func (r *Routers) UpdateAd(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.UpdateAd"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.AdRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	ad, err := r.AdService.UpdateAd(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, ad)
}

// DeleteAd godoc
// @Summary Delete an ad
// @Tags ads
// @Param id path string true "Ad id" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads/{id} [delete]
func (r *Routers) DeleteAd(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DeleteAd"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.AdService.DeleteAd(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdStats godoc
// @Summary Views, clicks and click-through rate of an ad
// @Tags ads
// @Produce json
// @Param id path string true "Ad id" format(uuid)
// @Success 200 {object} response.Response{data=dto.AdStatsResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/ads/{id}/stats [get]
func (r *Routers) AdStats(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.AdStats"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	stats, err := r.AdService.Stats(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, stats)
}
