package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/jwt"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues access/refresh pairs. Refresh tokens are single use:
// they must be present in the store and are removed when exchanged.
type TokenService struct {
	log        *slog.Logger
	repo       repository.TokenRepository
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(log *slog.Logger, repo repository.TokenRepository, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}

	return &TokenService{
		log:        log,
		repo:       repo,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	const op = "token_service.GenerateTokens"

	now := s.now()

	accessToken, err := jwt.NewToken(user, s.secret, s.accessTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := jwt.NewToken(user, s.secret, s.refreshTTL, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID.String(), refreshToken, s.refreshTTL); err != nil {
		s.log.Error("failed to store refresh token", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		UserID:           user.ID,
		TokenType:        "Bearer",
		AccessToken:      accessToken,
		AccessExpiresAt:  now.Add(s.accessTTL),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTTL),
	}, nil
}

func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "token_service.RefreshTokens"

	claims, err := jwt.Parse(refreshToken, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: malformed uid", op, models.ErrUnauthorized)
	}

	exists, err := s.repo.GetRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		s.log.Warn("refresh token not in store", slog.String("op", op), slog.String("user_id", claims.UserID))
		return nil, fmt.Errorf("%s: %w: token revoked", op, models.ErrUnauthorized)
	}

	if err := s.repo.DeleteRefreshToken(ctx, claims.UserID, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GenerateTokens(ctx, models.User{
		ID:      userID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	})
}

// RevokeAll drops every refresh token of the user.
func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	const op = "token_service.RevokeAll"

	if err := s.repo.DeleteAllUserTokens(ctx, userID.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ParseAccessToken verifies an access token and returns its claims.
func (s *TokenService) ParseAccessToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return claims, nil
}
