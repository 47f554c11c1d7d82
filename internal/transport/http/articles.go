package http

import (
	"log/slog"
	"net/http"
	"strings"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// ListArticles godoc
// @Summary List articles
// @Tags articles
// @Produce json
// @Param status query string false "draft, published or archived"
// @Param tags query string false "Comma separated tags, all must match"
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} response.Response{data=dto.ArticleListResponse}
// @Security ApiKeyAuth
// @Router /api/v1/articles [get]
func (r *Routers) ListArticles(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ListArticles"))

	filter := models.ArticleFilter{
		Status:  c.QueryParam("status"),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 10),
	}
	for _, tag := range strings.Split(c.QueryParam("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	resp, err := r.ArticleService.ListArticles(c.Request().Context(), filter)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, resp)
}

// CreateArticle godoc
// @Summary Create an article
// @Tags articles
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "Article"
// @Success 201 {object} response.Response{data=dto.ArticleResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/articles [post]
func (r *Routers) CreateArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.CreateArticle"))

	var req dto.CreateArticleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	article, err := r.ArticleService.CreateArticle(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, article)
}

// GetArticle godoc
// @Summary Get an article
// @Tags articles
// @Produce json
// @Param id path string true "Article id" format(uuid)
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/articles/{id} [get]
func (r *Routers) GetArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetArticle"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	article, err := r.ArticleService.GetArticle(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, article)
}

// UpdateArticle godoc
// @Summary Update an article
// @Tags articles
// @Accept json
// @Produce json
// @Param id path string true "Article id" format(uuid)
// @Param request body dto.UpdateArticleRequest true "Partial article"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/articles/{id} [put]
func (r *Routers) UpdateArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.UpdateArticle"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.UpdateArticleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	article, err := r.ArticleService.UpdateArticle(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, article)
}

// PublishArticle godoc
// @Summary Publish an article
// @Tags articles
// @Produce json
// @Param id path string true "Article id" format(uuid)
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Security ApiKeyAuth
// @Router /api/v1/articles/{id}/publish [patch]
func (r *Routers) PublishArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.PublishArticle"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	article, err := r.ArticleService.PublishArticle(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, article)
}

// ArchiveArticle godoc
// @Summary Archive an article
// @Tags articles
// @Produce json
// @Param id path string true "Article id" format(uuid)
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Security ApiKeyAuth
// @Router /api/v1/articles/{id}/archive [patch]
func (r *Routers) ArchiveArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ArchiveArticle"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	article, err := r.ArticleService.ArchiveArticle(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, article)
}

// DeleteArticle godoc
// @Summary Delete an article
// @Tags articles
// @Param id path string true "Article id" format(uuid)
// @Success 204
// @Security ApiKeyAuth
// @Router /api/v1/articles/{id} [delete]
func (r *Routers) DeleteArticle(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DeleteArticle"))

	id, err := paramUUID(c, "id")
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.ArticleService.DeleteArticle(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
