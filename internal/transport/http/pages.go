package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// ListChildPages godoc
// @Summary List the child pages of a magazine
// @Tags pages
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Success 200 {object} response.Response{data=[]models.ChildPage}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/pages [get]
func (r *Routers) ListChildPages(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ListChildPages"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	pages, err := r.ChildPageService.ListChildPages(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, pages)
}

// CreateChildPage godoc
// @Summary Create a child page
// @Description copyBlocks copies the magazine's blocks in their current order.
// @Tags pages
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param request body dto.CreateChildPageRequest true "Page"
// @Success 201 {object} response.Response{data=models.ChildPage}
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/pages [post]
func (r *Routers) CreateChildPage(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.CreateChildPage"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.CreateChildPageRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	page, err := r.ChildPageService.CreateChildPage(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, page)
}

// GetChildPage godoc
// @Summary Get a child page with its blocks
// @Tags pages
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Success 200 {object} response.Response{data=models.ChildPage}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId} [get]
func (r *Routers) GetChildPage(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetChildPage"))

	id, err := paramUUID(c, "pageId")
	if err != nil {
		return fail(c, log, err)
	}

	page, err := r.ChildPageService.GetChildPage(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// UpdateChildPage godoc
// @Summary Update a child page
// @Tags pages
// @Accept json
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param request body dto.UpdateChildPageRequest true "Partial page"
// @Success 200 {object} response.Response{data=models.ChildPage}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId} [put]
func (r *Routers) UpdateChildPage(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.UpdateChildPage"))

	id, err := paramUUID(c, "pageId")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.UpdateChildPageRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	page, err := r.ChildPageService.UpdateChildPage(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// ChangeChildPageStatus godoc
// @Summary Change the status of a child page
// @Tags pages
// @Accept json
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param request body dto.ChangeStatusRequest true "Status"
// @Success 200 {object} response.Response{data=models.ChildPage}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/status [patch]
func (r *Routers) ChangeChildPageStatus(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ChangeChildPageStatus"))

	id, err := paramUUID(c, "pageId")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.ChangeStatusRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	page, err := r.ChildPageService.ChangeStatus(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, page)
}

// DeleteChildPage godoc
// @Summary Delete a child page and its blocks
// @Tags pages
// @Param pageId path string true "Child page id" format(uuid)
// @Success 204
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId} [delete]
func (r *Routers) DeleteChildPage(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DeleteChildPage"))

	id, err := paramUUID(c, "pageId")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.ChildPageService.DeleteChildPage(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ChildPageSEO godoc
// @Summary Score the SEO metadata of a child page
// @Tags pages
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Success 200 {object} response.Response{data=seo.Report}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/seo [get]
func (r *Routers) ChildPageSEO(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ChildPageSEO"))

	id, err := paramUUID(c, "pageId")
	if err != nil {
		return fail(c, log, err)
	}

	report, err := r.ChildPageService.SEOReport(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, report)
}
