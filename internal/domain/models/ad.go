package models

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type AdStatus string

const (
	AdDraft     AdStatus = "draft"
	AdScheduled AdStatus = "scheduled"
	AdActive    AdStatus = "active"
	AdExpired   AdStatus = "expired"
)

type Ad struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ClientName     string     `db:"client_name" json:"clientName"`
	Headline       string     `db:"headline" json:"headline"`
	Subtitle       string     `db:"subtitle" json:"subtitle"`
	CTAText        string     `db:"cta_text" json:"ctaText"`
	CTAURL         string     `db:"cta_url" json:"ctaUrl"`
	ImageURL       string     `db:"image_url" json:"imageUrl"`
	MobileImageURL string     `db:"mobile_image_url" json:"mobileImageUrl"`
	VideoURL       string     `db:"video_url" json:"videoUrl"`
	Status         AdStatus   `db:"status" json:"status"`
	StartDate      *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate        *time.Time `db:"end_date" json:"endDate,omitempty"`
	Views          int64      `db:"views" json:"views"`
	Clicks         int64      `db:"clicks" json:"clicks"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

func (a Ad) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ClientName, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&a.Headline, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&a.CTAURL, is.URL),
		validation.Field(&a.ImageURL, is.URL),
		validation.Field(&a.MobileImageURL, is.URL),
		validation.Field(&a.VideoURL, is.URL),
		validation.Field(&a.Status, validation.Required, validation.In(AdDraft, AdScheduled, AdActive, AdExpired)),
		validation.Field(&a.EndDate, validation.By(func(interface{}) error {
			if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
				return errors.New("must not be before startDate")
			}
			return nil
		})),
	)
}

// RunningAt reports whether the ad is active and its window contains t.
func (a Ad) RunningAt(t time.Time) bool {
	if a.Status != AdActive {
		return false
	}
	if a.StartDate != nil && t.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && t.After(*a.EndDate) {
		return false
	}
	return true
}
