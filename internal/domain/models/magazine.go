package models

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Valid reports whether s is one of the document statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// SEOMeta is the metadata block shared by magazines and child pages.
type SEOMeta struct {
	MetaTitle       string `db:"meta_title" json:"metaTitle"`
	MetaDescription string `db:"meta_description" json:"metaDescription"`
	MetaKeywords    string `db:"meta_keywords" json:"metaKeywords"`
	CanonicalURL    string `db:"canonical_url" json:"canonicalUrl"`
	OGImage         string `db:"og_image" json:"ogImage"`
	RobotsMeta      string `db:"robots_meta" json:"robotsMeta"`
}

type Magazine struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Slug          string     `db:"slug" json:"slug"`
	Edition       string     `db:"edition" json:"edition"`
	EditionNumber int        `db:"edition_number" json:"editionNumber"`
	Description   string     `db:"description" json:"description"`
	CoverImage    string     `db:"cover_image" json:"coverImage"`
	SEO           SEOMeta    `json:"seo"`
	Status        Status     `db:"status" json:"status"`
	Featured      bool       `db:"featured" json:"featured"`
	PublishDate   *time.Time `db:"publish_date" json:"publishDate,omitempty"`
	Views         int64      `db:"views" json:"views"`
	Version       int        `db:"version" json:"version"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
	Blocks        []Block    `json:"blocks"`
}

type ChildPage struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	ParentMagazineID uuid.UUID  `db:"magazine_id" json:"parentMagazineId"`
	Name             string     `db:"name" json:"name"`
	Slug             string     `db:"slug" json:"slug"`
	Description      string     `db:"description" json:"description"`
	SEO              SEOMeta    `json:"seo"`
	Status           Status     `db:"status" json:"status"`
	PublishDate      *time.Time `db:"publish_date" json:"publishDate,omitempty"`
	Version          int        `db:"version" json:"version"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
	Blocks           []Block    `json:"blocks"`
}

type MagazineFilter struct {
	Status   string
	Featured *bool
	Search   string
	Page     int
	PerPage  int
}
