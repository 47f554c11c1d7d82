package models

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Slug        string         `db:"slug" json:"slug"`
	Excerpt     string         `db:"excerpt" json:"excerpt,omitempty"`
	Content     string         `db:"content" json:"content"`
	CoverImage  string         `db:"cover_image" json:"coverImage,omitempty"`
	Author      string         `db:"author" json:"author"`
	Category    string         `db:"category" json:"category,omitempty"`
	Tags        []string       `db:"tags" json:"tags"`
	MagazineID  *uuid.UUID     `db:"magazine_id" json:"magazineId,omitempty"`
	Status      Status         `db:"status" json:"status"`
	PublishedAt *time.Time     `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
	Metadata    map[string]any `db:"metadata" json:"metadata,omitempty"`
}

type ArticleFilter struct {
	Status  string
	Tags    []string
	Page    int
	PerPage int
}
