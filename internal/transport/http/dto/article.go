package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArticleRequest struct {
	Title       string         `json:"title" validate:"required,min=3,max=255"`
	Slug        string         `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt     string         `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content     string         `json:"content" validate:"required"`
	CoverImage  string         `json:"coverImage,omitempty" validate:"omitempty,url"`
	Author      string         `json:"author,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	MagazineID  *uuid.UUID     `json:"magazineId,omitempty" swaggertype:"string" format:"uuid"`
	Status      string         `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type UpdateArticleRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Slug        *string        `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt     *string        `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content     *string        `json:"content,omitempty"`
	CoverImage  *string        `json:"coverImage,omitempty" validate:"omitempty,url"`
	Author      *string        `json:"author,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	MagazineID  *uuid.UUID     `json:"magazineId,omitempty" swaggertype:"string" format:"uuid"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type ArticleListResponse struct {
	Articles   []ArticleResponse `json:"articles"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}

type ArticleResponse struct {
	ID          uuid.UUID      `json:"id" swaggertype:"string" format:"uuid"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt,omitempty"`
	Content     string         `json:"content"`
	CoverImage  string         `json:"coverImage,omitempty"`
	Author      string         `json:"author,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags"`
	MagazineID  *uuid.UUID     `json:"magazineId,omitempty" swaggertype:"string" format:"uuid"`
	Status      string         `json:"status"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
