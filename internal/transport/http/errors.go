package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// fail writes the error envelope matching the kind of err.
func fail(c echo.Context, log *slog.Logger, err error) error {
	var ve *models.ValidationError

	switch {
	case errors.As(err, &ve):
		log.Info("validation failed", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ValidationFailed(ve))
	case errors.Is(err, models.ErrUnauthorized):
		log.Info("unauthorized", sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	case errors.Is(err, models.ErrForbidden):
		log.Info("forbidden", sl.Err(err))
		return c.JSON(http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrConflict):
		log.Info("conflict", sl.Err(err))
		return c.JSON(http.StatusConflict, response.ErrConflict)
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// bind decodes the body into req and runs the struct validator.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("", "invalid request format")
	}
	return c.Validate(req)
}

func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, models.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, response.SuccessResponse(data))
}
