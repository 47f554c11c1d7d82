package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// ListMagazines godoc
// @Summary List magazines
// @Tags magazines
// @Produce json
// @Param status query string false "draft, published, archived or all"
// @Param featured query bool false "Only featured issues"
// @Param search query string false "Substring of name or description"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=dto.MagazineListResponse}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines [get]
func (r *Routers) ListMagazines(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ListMagazines"))

	filter := models.MagazineFilter{
		Status:  c.QueryParam("status"),
		Search:  c.QueryParam("search"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 10),
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return fail(c, log, models.NewValidationError("featured", "must be a boolean"))
		}
		filter.Featured = &featured
	}

	resp, err := r.MagazineService.ListMagazines(c.Request().Context(), filter)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, resp)
}

// CreateMagazine godoc
// @Summary Create a draft magazine
// @Description Without a slug one is derived from the name.
// @Tags magazines
// @Accept json
// @Produce json
// @Param request body dto.CreateMagazineRequest true "Magazine"
// @Success 201 {object} response.Response{data=models.Magazine}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Slug taken"
// @Security ApiKeyAuth
// @Router /api/v1/magazines [post]
func (r *Routers) CreateMagazine(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.CreateMagazine"))

	var req dto.CreateMagazineRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	m, err := r.MagazineService.CreateMagazine(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, m)
}

// GetMagazine godoc
// @Summary Get a magazine with all its blocks
// @Tags magazines
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Success 200 {object} response.Response{data=models.Magazine}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id} [get]
func (r *Routers) GetMagazine(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetMagazine"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	m, err := r.MagazineService.GetMagazine(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, m)
}

// UpdateMagazine godoc
// @Summary Update a magazine
// @Tags magazines
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param request body dto.UpdateMagazineRequest true "Partial magazine"
// @Success 200 {object} response.Response{data=models.Magazine}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id} [put]
func (r *Routers) UpdateMagazine(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.UpdateMagazine"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.UpdateMagazineRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	m, err := r.MagazineService.UpdateMagazine(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, m)
}

// ChangeMagazineStatus godoc
// @Summary Publish, archive or unpublish a magazine
// @Description Publishing validates every block and reports all violations.
// @Tags magazines
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param request body dto.ChangeStatusRequest true "Status"
// @Success 200 {object} response.Response{data=models.Magazine}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/status [patch]
func (r *Routers) ChangeMagazineStatus(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ChangeMagazineStatus"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.ChangeStatusRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	m, err := r.MagazineService.ChangeStatus(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, m)
}

// DeleteMagazine godoc
// @Summary Delete a magazine with its pages and blocks
// @Tags magazines
// @Param id path string true "Magazine id" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id} [delete]
func (r *Routers) DeleteMagazine(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DeleteMagazine"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.MagazineService.DeleteMagazine(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MagazineSEO godoc
// @Summary Score the SEO metadata of a magazine
// @Tags magazines
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Success 200 {object} response.Response{data=seo.Report}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/seo [get]
func (r *Routers) MagazineSEO(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.MagazineSEO"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	report, err := r.MagazineService.SEOReport(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, report)
}
