package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/request"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func newTestService() (*UserService, *MockUserRepository, *MockTokenIssuer) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	svc := NewUserService(slog.Default(), repo, tokens)
	svc.cost = bcrypt.MinCost
	return svc, repo, tokens
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password", func(t *testing.T) {
		svc, repo, _ := newTestService()
		id := uuid.New()
		password := gofakeit.Password(true, true, true, false, false, 12)

		repo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "redazione@example.com" &&
				bcrypt.CompareHashAndPassword(u.Password, []byte(password)) == nil
		})).Return(id, nil)

		resp, err := svc.Register(ctx, dto.UserRegisterInput{
			Name:     gofakeit.Name(),
			Email:    " Redazione@Example.com ",
			Password: password,
		})
		require.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "redazione@example.com", resp.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("SaveUser", ctx, mock.Anything).Return(uuid.Nil, storage.ErrUserExists)

		_, err := svc.Register(ctx, dto.UserRegisterInput{Name: "Ada", Email: gofakeit.Email(), Password: "password123"})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: uuid.New(), Email: "redazione@example.com", Password: hash, IsAdmin: true}

	t.Run("success", func(t *testing.T) {
		svc, repo, tokens := newTestService()
		pair := &models.TokenPair{UserID: user.ID, AccessToken: "a", RefreshToken: "r"}

		repo.On("UserByEmail", ctx, user.Email).Return(user, nil)
		repo.On("UpdateLastLogin", ctx, user.ID, mock.Anything).Return(nil)
		tokens.On("GenerateTokens", ctx, user).Return(pair, nil)

		got, err := svc.Login(ctx, request.LoginRequest{Email: "Redazione@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, pair, got)
		repo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, tokens := newTestService()
		repo.On("UserByEmail", ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, request.LoginRequest{Email: user.Email, Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
		tokens.AssertNotCalled(t, "GenerateTokens", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("UserByEmail", ctx, "ghost@example.com").Return(models.User{}, storage.ErrUserNotFound)

		_, err := svc.Login(ctx, request.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("last login failure does not block", func(t *testing.T) {
		svc, repo, tokens := newTestService()
		repo.On("UserByEmail", ctx, user.Email).Return(user, nil)
		repo.On("UpdateLastLogin", ctx, user.ID, mock.Anything).Return(errors.New("timeout"))
		tokens.On("GenerateTokens", ctx, user).Return(&models.TokenPair{}, nil)

		_, err := svc.Login(ctx, request.LoginRequest{Email: user.Email, Password: "password123"})
		require.NoError(t, err)
	})
}

func TestUserService_IsAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	id := uuid.New()
	repo.On("IsAdmin", ctx, id).Return(true, nil)

	ok, err := svc.IsAdmin(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
}
