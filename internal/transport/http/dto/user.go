package dto

import (
	"magazine_cms/internal/domain/models"
)

// UserRegisterInput is the payload of POST /auth/register.
type UserRegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) models.User {
	return models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: passwordHash,
	}
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
