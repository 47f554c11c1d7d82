package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

const testSecret = "test-secret"

var (
	testUser = models.User{
		ID:      uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
		Email:   "redazione@example.com",
		IsAdmin: true,
	}
	testCtx = context.Background()
)

func newTestService() (*TokenService, *MockTokenRepository) {
	repo := new(MockTokenRepository)
	return NewTokenService(slog.Default(), repo, testSecret, time.Minute, time.Hour), repo
}

func TestGenerateTokens_Success(t *testing.T) {
	service, repo := newTestService()

	now := time.Now()
	service.now = func() time.Time { return now }
	repo.On("SaveRefreshToken", testCtx, testUser.ID.String(), mock.Anything, time.Hour).Return(nil)

	tokens, err := service.GenerateTokens(testCtx, testUser)
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, tokens.UserID)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, now.Add(time.Minute), tokens.AccessExpiresAt)
	assert.Equal(t, now.Add(time.Hour), tokens.RefreshExpiresAt)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	claims, err := service.ParseAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, testUser.Email, claims.Email)
	repo.AssertExpectations(t)
}

func TestGenerateTokens_RepoError(t *testing.T) {
	service, repo := newTestService()

	expectedErr := errors.New("storage error")
	repo.On("SaveRefreshToken", testCtx, testUser.ID.String(), mock.Anything, mock.Anything).Return(expectedErr)

	tokens, err := service.GenerateTokens(testCtx, testUser)

	assert.ErrorIs(t, err, expectedErr)
	assert.Nil(t, tokens)
}

func TestRefreshTokens_Success(t *testing.T) {
	service, repo := newTestService()

	refreshToken, err := jwt.NewToken(testUser, testSecret, time.Hour, time.Now())
	require.NoError(t, err)

	repo.On("GetRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(true, nil)
	repo.On("DeleteRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(nil)
	repo.On("SaveRefreshToken", testCtx, testUser.ID.String(), mock.Anything, time.Hour).Return(nil)

	newTokens, err := service.RefreshTokens(testCtx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newTokens.AccessToken)
	assert.NotEqual(t, refreshToken, newTokens.RefreshToken)

	claims, err := service.ParseAccessToken(newTokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	repo.AssertExpectations(t)
}

func TestRefreshTokens_InvalidToken(t *testing.T) {
	service, _ := newTestService()

	_, err := service.RefreshTokens(testCtx, "invalid.token.string")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestRefreshTokens_WrongSecret(t *testing.T) {
	service, repo := newTestService()

	forged, err := jwt.NewToken(testUser, "forged", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = service.RefreshTokens(testCtx, forged)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	repo.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTokens_TokenNotInStorage(t *testing.T) {
	service, repo := newTestService()

	refreshToken, _ := jwt.NewToken(testUser, testSecret, time.Hour, time.Now())
	repo.On("GetRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(false, nil)

	_, err := service.RefreshTokens(testCtx, refreshToken)

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	repo.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTokens_StorageError(t *testing.T) {
	service, repo := newTestService()

	refreshToken, _ := jwt.NewToken(testUser, testSecret, time.Hour, time.Now())
	expectedErr := errors.New("storage error")
	repo.On("GetRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(false, expectedErr)

	_, err := service.RefreshTokens(testCtx, refreshToken)

	assert.ErrorIs(t, err, expectedErr)
}

func TestRefreshTokens_ExpiredToken(t *testing.T) {
	service, repo := newTestService()

	expiredToken, _ := jwt.NewToken(testUser, testSecret, time.Minute, time.Now().Add(-time.Hour))

	_, err := service.RefreshTokens(testCtx, expiredToken)

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	repo.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTokens_DeleteTokenError(t *testing.T) {
	service, repo := newTestService()

	refreshToken, _ := jwt.NewToken(testUser, testSecret, time.Hour, time.Now())
	expectedErr := errors.New("delete error")

	repo.On("GetRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(true, nil)
	repo.On("DeleteRefreshToken", testCtx, testUser.ID.String(), refreshToken).Return(expectedErr)

	_, err := service.RefreshTokens(testCtx, refreshToken)

	assert.ErrorIs(t, err, expectedErr)
	repo.AssertExpectations(t)
}

func TestRevokeAll(t *testing.T) {
	service, repo := newTestService()

	repo.On("DeleteAllUserTokens", testCtx, testUser.ID.String()).Return(nil)

	require.NoError(t, service.RevokeAll(testCtx, testUser.ID))
	repo.AssertExpectations(t)
}
