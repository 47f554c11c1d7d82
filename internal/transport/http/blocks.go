package http

import (
	"log/slog"
	"net/http"

	"magazine_cms/internal/transport/http/dto"

	"github.com/labstack/echo/v4"
)

// Block handlers shared by magazines and child pages. param names the path
// parameter that holds the owning document id.

func (r *Routers) listBlocks(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.listBlocks"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}

	blocks, err := svc.ListBlocks(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, blocks)
}

func (r *Routers) addBlock(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.addBlock"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.CreateBlockRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	block, err := svc.AddBlock(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, block)
}

func (r *Routers) updateBlock(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.updateBlock"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}
	blockID, err := paramUUID(c, "blockId")
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.UpdateBlockRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	block, err := svc.UpdateBlock(c.Request().Context(), id, blockID, req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, block)
}

func (r *Routers) toggleBlock(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.toggleBlock"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}
	blockID, err := paramUUID(c, "blockId")
	if err != nil {
		return fail(c, log, err)
	}

	block, err := svc.ToggleBlockVisibility(c.Request().Context(), id, blockID)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, block)
}

func (r *Routers) deleteBlock(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.deleteBlock"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}
	blockID, err := paramUUID(c, "blockId")
	if err != nil {
		return fail(c, log, err)
	}

	if err := svc.DeleteBlock(c.Request().Context(), id, blockID); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) reorderBlocks(c echo.Context, svc BlockService, param string) error {
	log := r.log.With(slog.String("op", "http.routers.reorderBlocks"))

	id, err := paramUUID(c, param)
	if err != nil {
		return fail(c, log, err)
	}

	var req dto.ReorderBlocksRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	blocks, err := svc.ReorderBlocks(c.Request().Context(), id, req.IDs)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, blocks)
}

// ListMagazineBlocks godoc
// @Summary List the blocks of a magazine in position order
// @Tags blocks
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Success 200 {object} response.Response{data=[]models.Block}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks [get]
func (r *Routers) ListMagazineBlocks(c echo.Context) error {
	return r.listBlocks(c, r.MagazineService, "id")
}

// AddMagazineBlock godoc
// @Summary Append a block to a magazine
// @Description Missing payload keys get their defaults; the payload is validated against the block type.
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param request body dto.CreateBlockRequest true "Block"
// @Success 201 {object} response.Response{data=models.Block}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks [post]
func (r *Routers) AddMagazineBlock(c echo.Context) error {
	return r.addBlock(c, r.MagazineService, "id")
}

// UpdateMagazineBlock godoc
// @Summary Update a magazine block
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Param request body dto.UpdateBlockRequest true "Payload merged over the stored one"
// @Success 200 {object} response.Response{data=models.Block}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks/{blockId} [put]
func (r *Routers) UpdateMagazineBlock(c echo.Context) error {
	return r.updateBlock(c, r.MagazineService, "id")
}

// ToggleMagazineBlock godoc
// @Summary Flip the visibility of a magazine block
// @Tags blocks
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Success 200 {object} response.Response{data=models.Block}
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks/{blockId}/visibility [patch]
func (r *Routers) ToggleMagazineBlock(c echo.Context) error {
	return r.toggleBlock(c, r.MagazineService, "id")
}

// DeleteMagazineBlock godoc
// @Summary Delete a magazine block
// @Tags blocks
// @Param id path string true "Magazine id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks/{blockId} [delete]
func (r *Routers) DeleteMagazineBlock(c echo.Context) error {
	return r.deleteBlock(c, r.MagazineService, "id")
}

// ReorderMagazineBlocks godoc
// @Summary Reorder the blocks of a magazine
// @Description ids must list every block of the magazine exactly once.
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Magazine id" format(uuid)
// @Param request body dto.ReorderBlocksRequest true "New order"
// @Success 200 {object} response.Response{data=[]models.Block}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/magazines/{id}/blocks/order [put]
func (r *Routers) ReorderMagazineBlocks(c echo.Context) error {
	return r.reorderBlocks(c, r.MagazineService, "id")
}

// ListPageBlocks godoc
// @Summary List the blocks of a child page
// @Tags blocks
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Success 200 {object} response.Response{data=[]models.Block}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks [get]
func (r *Routers) ListPageBlocks(c echo.Context) error {
	return r.listBlocks(c, r.ChildPageService, "pageId")
}

// AddPageBlock godoc
// @Summary Append a block to a child page
// @Tags blocks
// @Accept json
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param request body dto.CreateBlockRequest true "Block"
// @Success 201 {object} response.Response{data=models.Block}
// @Failure 400 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks [post]
func (r *Routers) AddPageBlock(c echo.Context) error {
	return r.addBlock(c, r.ChildPageService, "pageId")
}

// UpdatePageBlock godoc
// @Summary Update a child page block
// @Tags blocks
// @Accept json
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Param request body dto.UpdateBlockRequest true "Payload"
// @Success 200 {object} response.Response{data=models.Block}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks/{blockId} [put]
func (r *Routers) UpdatePageBlock(c echo.Context) error {
	return r.updateBlock(c, r.ChildPageService, "pageId")
}

// TogglePageBlock godoc
// @Summary Flip the visibility of a child page block
// @Tags blocks
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Success 200 {object} response.Response{data=models.Block}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks/{blockId}/visibility [patch]
func (r *Routers) TogglePageBlock(c echo.Context) error {
	return r.toggleBlock(c, r.ChildPageService, "pageId")
}

// DeletePageBlock godoc
// @Summary Delete a child page block
// @Tags blocks
// @Param pageId path string true "Child page id" format(uuid)
// @Param blockId path string true "Block id" format(uuid)
// @Success 204
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks/{blockId} [delete]
func (r *Routers) DeletePageBlock(c echo.Context) error {
	return r.deleteBlock(c, r.ChildPageService, "pageId")
}

// ReorderPageBlocks godoc
// @Summary Reorder the blocks of a child page
// @Tags blocks
// @Accept json
// @Produce json
// @Param pageId path string true "Child page id" format(uuid)
// @Param request body dto.ReorderBlocksRequest true "New order"
// @Success 200 {object} response.Response{data=[]models.Block}
// @Security ApiKeyAuth
// @Router /api/v1/pages/{pageId}/blocks/order [put]
func (r *Routers) ReorderPageBlocks(c echo.Context) error {
	return r.reorderBlocks(c, r.ChildPageService, "pageId")
}
