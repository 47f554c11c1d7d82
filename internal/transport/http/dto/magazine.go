package dto

import (
	"time"

	"magazine_cms/internal/domain/models"

	"github.com/google/uuid"
)

type CreateMagazineRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Slug          string          `json:"slug,omitempty" validate:"omitempty,slug"`
	Edition       string          `json:"edition,omitempty" validate:"omitempty,max=100"`
	EditionNumber int             `json:"editionNumber,omitempty" validate:"gte=0"`
	Description   string          `json:"description,omitempty"`
	CoverImage    string          `json:"coverImage,omitempty" validate:"omitempty,url"`
	SEO           *models.SEOMeta `json:"seo,omitempty"`
	Featured      bool            `json:"featured,omitempty"`
	PublishDate   *time.Time      `json:"publishDate,omitempty"`
}

type UpdateMagazineRequest struct {
	Name          *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Slug          *string         `json:"slug,omitempty" validate:"omitempty,slug"`
	Edition       *string         `json:"edition,omitempty" validate:"omitempty,max=100"`
	EditionNumber *int            `json:"editionNumber,omitempty" validate:"omitempty,gte=0"`
	Description   *string         `json:"description,omitempty"`
	CoverImage    *string         `json:"coverImage,omitempty" validate:"omitempty,url"`
	SEO           *models.SEOMeta `json:"seo,omitempty"`
	Featured      *bool           `json:"featured,omitempty"`
	PublishDate   *time.Time      `json:"publishDate,omitempty"`
}

type ChangeStatusRequest struct {
	Status      string     `json:"status" validate:"required,oneof=draft published archived"`
	PublishDate *time.Time `json:"publishDate,omitempty"`
}

type MagazineListResponse struct {
	Magazines  []models.Magazine `json:"magazines"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}

type CreateBlockRequest struct {
	Type    string         `json:"type" validate:"required"`
	Data    map[string]any `json:"data,omitempty"`
	Visible *bool          `json:"visible,omitempty"`
}

type UpdateBlockRequest struct {
	Data    map[string]any `json:"data,omitempty"`
	Visible *bool          `json:"visible,omitempty"`
}

type ReorderBlocksRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required" swaggertype:"array,string"`
}

type CreateChildPageRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Slug        string          `json:"slug,omitempty" validate:"omitempty,slug"`
	Description string          `json:"description,omitempty"`
	SEO         *models.SEOMeta `json:"seo,omitempty"`
	CopyBlocks  bool            `json:"copyBlocks,omitempty"`
}

type UpdateChildPageRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Slug        *string         `json:"slug,omitempty" validate:"omitempty,slug"`
	Description *string         `json:"description,omitempty"`
	SEO         *models.SEOMeta `json:"seo,omitempty"`
}
