package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/seo"

	"github.com/labstack/echo/v4"
)

// AnalyzeSEO godoc
// @Summary Score arbitrary SEO metadata
// @Tags seo
// @Accept json
// @Produce json
// @Param request body seo.Input true "Metadata"
// @Success 200 {object} response.Response{data=seo.Report}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/seo/analyze [post]
func (r *Routers) AnalyzeSEO(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.AnalyzeSEO"))

	var in seo.Input
	if err := c.Bind(&in); err != nil {
		return fail(c, log, models.NewValidationError("", "invalid request format"))
	}

	return ok(c, http.StatusOK, seo.Analyze(in))
}
