package http

import (
	"errors"
	"log/slog"
	"net/http"

	"magazine_cms/internal/domain/models"
	jwtlib "magazine_cms/internal/lib/jwt"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/request"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextUserKey is where the JWT middleware stores the parsed token.
const ContextUserKey = "user"

// CurrentClaims returns the claims of the authenticated request.
func CurrentClaims(c echo.Context) (*jwtlib.Claims, bool) {
	token, ok := c.Get(ContextUserKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*jwtlib.Claims)
	return claims, ok
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Account data"
// @Success 201 {object} response.Response{data=dto.UserResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/auth/register [post]
func (r *Routers) Register(c echo.Context) error {
	const op = "http.routers.Register"

	log := r.log.With(slog.String("op", op))

	var req dto.UserRegisterInput
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	user, err := r.UserService.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Returns an access and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(slog.String("op", op))

	var req request.LoginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	tokens, err := r.UserService.Login(c.Request().Context(), req)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, tokens)
}

// Refresh godoc
// @Summary Exchange a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(slog.String("op", op))

	var req dto.RefreshRequest
	if err := bind(c, &req); err != nil {
		return fail(c, log, err)
	}

	tokens, err := r.AuthService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, tokens)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=dto.UserResponse}
// @Failure 401 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/me [get]
func (r *Routers) Me(c echo.Context) error {
	const op = "http.routers.Me"

	log := r.log.With(slog.String("op", op))

	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, log, err)
	}

	user, err := r.UserService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, log, err)
	}

	return ok(c, http.StatusOK, user)
}

// Logout godoc
// @Summary Revoke every refresh token of the current user
// @Tags auth
// @Success 204
// @Failure 401 {object} response.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(slog.String("op", op))

	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, log, err)
	}

	if err := r.AuthService.RevokeAll(c.Request().Context(), userID); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AdminOnly rejects requests whose token lacks the admin claim or whose user
// is no longer an admin.
func (r *Routers) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := r.log.With(slog.String("op", "http.routers.AdminOnly"))

		claims, found := CurrentClaims(c)
		if !found {
			return fail(c, log, models.ErrUnauthorized)
		}
		if !claims.IsAdmin {
			return fail(c, log, models.ErrForbidden)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return fail(c, log, models.ErrUnauthorized)
		}

		isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
		if errors.Is(err, storage.ErrNotFound) {
			return fail(c, log, models.ErrUnauthorized)
		}
		if err != nil {
			return fail(c, log, err)
		}
		if !isAdmin {
			return fail(c, log, models.ErrForbidden)
		}

		return next(c)
	}
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	claims, found := CurrentClaims(c)
	if !found {
		return uuid.Nil, models.ErrUnauthorized
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return id, nil
}
