package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/request"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)

// TokenIssuer creates a token pair for an authenticated user.
type TokenIssuer interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenIssuer
	cost   int
	now    func() time.Time
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		log:    log,
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) Register(ctx context.Context, input dto.UserRegisterInput) (dto.UserResponse, error) {
	const op = "user_service.Register"

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", input.Email),
	)

	log.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return dto.UserResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	user := input.ToDomain(passHash)

	id, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
		} else {
			log.Error("failed to save user", sl.Err(err))
		}
		return dto.UserResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("id", id.String()))

	return dto.UserResponse{
		ID:    id.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *UserService) Login(ctx context.Context, req request.LoginRequest) (*models.TokenPair, error) {
	const op = "user_service.Login"

	email := strings.ToLower(strings.TrimSpace(req.Email))

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(req.Password)); err != nil {
		log.Info("invalid credentials")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	tokens, err := s.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Warn("failed to update last login", sl.Err(err))
	}

	log.Info("user logged in")

	return tokens, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "user_service.IsAdmin"

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return isAdmin, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (dto.UserResponse, error) {
	const op = "user_service.GetUser"

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.UserResponse{
		ID:      user.ID.String(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
