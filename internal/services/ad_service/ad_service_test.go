package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAdRepository struct {
	mock.Mock
}

func (m *MockAdRepository) SaveAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	args := m.Called(ctx, ad)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdRepository) GetAdByID(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdRepository) ListAds(ctx context.Context, status string, now time.Time) ([]models.Ad, error) {
	args := m.Called(ctx, status, now)
	return args.Get(0).([]models.Ad), args.Error(1)
}

func (m *MockAdRepository) UpdateAd(ctx context.Context, ad models.Ad) (models.Ad, error) {
	args := m.Called(ctx, ad)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdRepository) DeleteAd(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdRepository) IncrementAdViews(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdRepository) IncrementAdClicks(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var fixedNow = time.Date(2025, 6, 21, 9, 30, 0, 0, time.UTC)

func newTestService() (*AdService, *MockAdRepository) {
	repo := new(MockAdRepository)
	svc := NewAdService(slog.Default(), repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestClickThroughRate(t *testing.T) {
	tests := []struct {
		views, clicks int64
		want          string
	}{
		{0, 0, "0.00"},
		{0, 5, "0.00"},
		{200, 7, "3.50"},
		{3, 1, "33.33"},
		{3, 2, "66.67"},
		{10, 10, "100.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClickThroughRate(tt.views, tt.clicks), "views=%d clicks=%d", tt.views, tt.clicks)
	}
}

func TestAdService_CreateAd(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to draft", func(t *testing.T) {
		svc, repo := newTestService()
		repo.On("SaveAd", ctx, mock.MatchedBy(func(ad models.Ad) bool { return ad.Status == models.AdDraft })).
			Return(models.Ad{ID: uuid.New(), Status: models.AdDraft}, nil)

		ad, err := svc.CreateAd(ctx, dto.AdRequest{ClientName: "Lido Azzurro", Headline: "Ombrelloni"})
		require.NoError(t, err)
		assert.Equal(t, models.AdDraft, ad.Status)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, repo := newTestService()
		start := fixedNow
		end := fixedNow.Add(-time.Hour)

		_, err := svc.CreateAd(ctx, dto.AdRequest{
			ClientName: "Lido Azzurro",
			Headline:   "Ombrelloni",
			StartDate:  &start,
			EndDate:    &end,
			CTAURL:     "not a url",
		})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
		repo.AssertNotCalled(t, "SaveAd", mock.Anything, mock.Anything)
	})
}

func TestAdService_UpdateKeepsCounters(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id := uuid.New()
	repo.On("GetAdByID", ctx, id).Return(models.Ad{ID: id, Status: models.AdActive, Views: 40, Clicks: 4}, nil)
	repo.On("UpdateAd", ctx, mock.MatchedBy(func(ad models.Ad) bool {
		return ad.ID == id && ad.Views == 40 && ad.Clicks == 4 && ad.Status == models.AdActive && ad.Headline == "Nuovo"
	})).Return(models.Ad{ID: id, Headline: "Nuovo"}, nil)

	_, err := svc.UpdateAd(ctx, id, dto.AdRequest{ClientName: "Lido", Headline: "Nuovo"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdService_ListAds(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	repo.On("ListAds", ctx, "active", fixedNow).Return([]models.Ad{{Headline: "Ombrelloni"}}, nil)

	ads, err := svc.ListAds(ctx, "active")
	require.NoError(t, err)
	assert.Len(t, ads, 1)

	_, err = svc.ListAds(ctx, "paused")
	assert.True(t, models.IsValidationError(err))
}

func TestAdService_CountersAndStats(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id, missing := uuid.New(), uuid.New()
	repo.On("IncrementAdViews", ctx, id).Return(nil)
	repo.On("IncrementAdClicks", ctx, id).Return(nil)
	repo.On("IncrementAdClicks", ctx, missing).Return(storage.ErrNotFound)
	repo.On("GetAdByID", ctx, id).Return(models.Ad{ID: id, Views: 200, Clicks: 7}, nil)

	require.NoError(t, svc.RecordView(ctx, id))
	require.NoError(t, svc.RecordClick(ctx, id))
	assert.ErrorIs(t, svc.RecordClick(ctx, missing), storage.ErrNotFound)

	stats, err := svc.Stats(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "3.50", stats.CTR)
	assert.Equal(t, int64(200), stats.Views)
}
