package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdService struct {
	log  *slog.Logger
	repo repository.AdRepository
	now  func() time.Time
}

func NewAdService(log *slog.Logger, repo repository.AdRepository) *AdService {
	return &AdService{
		log:  log,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *AdService) CreateAd(ctx context.Context, req dto.AdRequest) (models.Ad, error) {
	const op = "ad_service.CreateAd"

	log := s.log.With(
		slog.String("op", op),
		slog.String("client", req.ClientName),
	)

	ad := req.ToDomain()
	if err := models.FromOzzo(ad.Validate()); err != nil {
		log.Info("invalid ad", sl.Err(err))
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := s.repo.SaveAd(ctx, ad)
	if err != nil {
		log.Error("failed to save ad", sl.Err(err))
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("ad created", slog.String("id", saved.ID.String()))

	return saved, nil
}

func (s *AdService) GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	const op = "ad_service.GetAd"

	ad, err := s.repo.GetAdByID(ctx, id)
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	return ad, nil
}

// ListAds filters by status. "active" only returns ads whose schedule
// window contains the current time.
func (s *AdService) ListAds(ctx context.Context, status string) ([]models.Ad, error) {
	const op = "ad_service.ListAds"

	switch status {
	case "", "all", string(models.AdDraft), string(models.AdScheduled), string(models.AdActive), string(models.AdExpired):
	default:
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "invalid status filter '"+status+"'"))
	}

	ads, err := s.repo.ListAds(ctx, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ads, nil
}

// UpdateAd replaces the editable fields. Counters are preserved.
func (s *AdService) UpdateAd(ctx context.Context, id uuid.UUID, req dto.AdRequest) (models.Ad, error) {
	const op = "ad_service.UpdateAd"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	current, err := s.repo.GetAdByID(ctx, id)
	if err != nil {
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	ad := req.ToDomain()
	if req.Status == "" {
		ad.Status = current.Status
	}
	ad.ID = id
	ad.Views = current.Views
	ad.Clicks = current.Clicks
	ad.CreatedAt = current.CreatedAt

	if err := models.FromOzzo(ad.Validate()); err != nil {
		log.Info("invalid ad", sl.Err(err))
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateAd(ctx, ad)
	if err != nil {
		log.Error("failed to update ad", sl.Err(err))
		return models.Ad{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *AdService) DeleteAd(ctx context.Context, id uuid.UUID) error {
	const op = "ad_service.DeleteAd"

	if err := s.repo.DeleteAd(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("ad deleted", slog.String("op", op), slog.String("id", id.String()))

	return nil
}

func (s *AdService) RecordView(ctx context.Context, id uuid.UUID) error {
	const op = "ad_service.RecordView"

	if err := s.repo.IncrementAdViews(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *AdService) RecordClick(ctx context.Context, id uuid.UUID) error {
	const op = "ad_service.RecordClick"

	if err := s.repo.IncrementAdClicks(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *AdService) Stats(ctx context.Context, id uuid.UUID) (dto.AdStatsResponse, error) {
	const op = "ad_service.Stats"

	ad, err := s.repo.GetAdByID(ctx, id)
	if err != nil {
		return dto.AdStatsResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return dto.AdStatsResponse{
		ID:     ad.ID.String(),
		Views:  ad.Views,
		Clicks: ad.Clicks,
		CTR:    ClickThroughRate(ad.Views, ad.Clicks),
	}, nil
}

// ClickThroughRate returns clicks/views as a percentage with two decimals,
// "0.00" when there are no views.
func ClickThroughRate(views, clicks int64) string {
	if views <= 0 {
		return "0.00"
	}

	return decimal.NewFromInt(clicks).
		Div(decimal.NewFromInt(views)).
		Mul(decimal.NewFromInt(100)).
		StringFixed(2)
}
