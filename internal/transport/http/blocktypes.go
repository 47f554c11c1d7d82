package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// ListBlockTypes godoc
// @Summary List block types
// @Description Predefined types first in catalog order, then custom types by creation time.
// @Tags block-types
// @Produce json
// @Success 200 {object} response.Response{data=[]models.BlockTypeDefinition}
// @Security ApiKeyAuth
// @Router /api/v1/block-types [get]
func (r *Routers) ListBlockTypes(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ListBlockTypes"))

	defs, err := r.RegistryService.All(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, defs)
}

// GetBlockType godoc
// @Summary Get a block type
// @Tags block-types
// @Produce json
// @Param id path string true "Block type id"
// @Success 200 {object} response.Response{data=models.BlockTypeDefinition}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id} [get]
func (r *Routers) GetBlockType(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.GetBlockType"))

	def, err := r.RegistryService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, def)
}

// CreateBlockType godoc
// @Summary Create a custom block type
// @Description The id is derived from the name; taken ids get a numeric suffix.
// @Tags block-types
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockTypeRequest true "Definition"
// @Success 201 {object} response.Response{data=models.BlockTypeDefinition}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types [post]
func (r *Routers) CreateBlockType(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.CreateBlockType"))

	var req dto.CreateBlockTypeRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	def, err := r.RegistryService.Create(c.Request().Context(), req.ToDomain())
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, def)
}

// UpdateBlockType godoc
// @Summary Update a custom block type
// @Tags block-types
// @Accept json
// @Produce json
// @Param id path string true "Block type id"
// @Param request body dto.UpdateBlockTypeRequest true "Partial definition"
// @Success 200 {object} response.Response{data=models.BlockTypeDefinition}
// @Failure 403 {object} response.ErrorResponse "Predefined type"
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id} [put]
func (r *Routers) UpdateBlockType(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.UpdateBlockType"))

	var req dto.UpdateBlockTypeRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	def, err := r.RegistryService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, def)
}

// DuplicateBlockType godoc
// @Summary Duplicate a block type as a new custom type
// @Tags block-types
// @Accept json
// @Produce json
// @Param id path string true "Source block type id"
// @Param request body dto.DuplicateBlockTypeRequest true "New name"
// @Success 201 {object} response.Response{data=models.BlockTypeDefinition}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id}/duplicate [post]
func (r *Routers) DuplicateBlockType(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DuplicateBlockType"))

	var req dto.DuplicateBlockTypeRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	def, err := r.RegistryService.Duplicate(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, def)
}

// DeleteBlockType godoc
// @Summary Delete a custom block type
// @Tags block-types
// @Param id path string true "Block type id"
// @Success 204
// @Failure 403 {object} response.ErrorResponse "Predefined type"
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id} [delete]
func (r *Routers) DeleteBlockType(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.DeleteBlockType"))

	if err := r.RegistryService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// BlockTypeDefaults godoc
// @Summary Default payload of a block type
// @Tags block-types
// @Produce json
// @Param id path string true "Block type id"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id}/defaults [get]
func (r *Routers) BlockTypeDefaults(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.BlockTypeDefaults"))

	data, err := r.RegistryService.Defaults(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, data)
}

// ValidateBlockPayload godoc
// @Summary Validate a payload against a block type
// @Tags block-types
// @Accept json
// @Produce json
// @Param id path string true "Block type id"
// @Param request body dto.ValidatePayloadRequest true "Payload"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/block-types/{id}/validate [post]
func (r *Routers) ValidateBlockPayload(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.ValidateBlockPayload"))

	var req dto.ValidatePayloadRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	if err := r.RegistryService.Validate(c.Request().Context(), c.Param("id"), req.Data); err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, map[string]bool{"valid": true})
}
