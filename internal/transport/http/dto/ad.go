package dto

import (
	"time"

	"magazine_cms/internal/domain/models"
)

type AdRequest struct {
	ClientName     string     `json:"clientName" validate:"required"`
	Headline       string     `json:"headline" validate:"required"`
	Subtitle       string     `json:"subtitle,omitempty"`
	CTAText        string     `json:"ctaText,omitempty"`
	CTAURL         string     `json:"ctaUrl,omitempty"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	MobileImageURL string     `json:"mobileImageUrl,omitempty"`
	VideoURL       string     `json:"videoUrl,omitempty"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled active expired"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

func (r AdRequest) ToDomain() models.Ad {
	status := models.AdStatus(r.Status)
	if status == "" {
		status = models.AdDraft
	}

	return models.Ad{
		ClientName:     r.ClientName,
		Headline:       r.Headline,
		Subtitle:       r.Subtitle,
		CTAText:        r.CTAText,
		CTAURL:         r.CTAURL,
		ImageURL:       r.ImageURL,
		MobileImageURL: r.MobileImageURL,
		VideoURL:       r.VideoURL,
		Status:         status,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
	}
}

// AdStatsResponse reports delivery counters; CTR is a percentage rendered
// with two decimals.
type AdStatsResponse struct {
	ID     string `json:"id"`
	Views  int64  `json:"views"`
	Clicks int64  `json:"clicks"`
	CTR    string `json:"ctr"`
}
