package http_test

import (
	"context"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/seo"
	"magazine_cms/internal/transport/http/dto"
	"magazine_cms/internal/transport/http/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input dto.UserRegisterInput) (dto.UserResponse, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req request.LoginRequest) (*models.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

func (m *MockUserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) All(ctx context.Context) ([]models.BlockTypeDefinition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlockTypeDefinition), args.Error(1)
}

func (m *MockRegistryService) Get(ctx context.Context, id string) (models.BlockTypeDefinition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.BlockTypeDefinition), args.Error(1)
}

func (m *MockRegistryService) Create(ctx context.Context, def models.BlockTypeDefinition) (models.BlockTypeDefinition, error) {
	args := m.Called(ctx, def)
	return args.Get(0).(models.BlockTypeDefinition), args.Error(1)
}

func (m *MockRegistryService) Update(ctx context.Context, id string, req dto.UpdateBlockTypeRequest) (models.BlockTypeDefinition, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.BlockTypeDefinition), args.Error(1)
}

func (m *MockRegistryService) Duplicate(ctx context.Context, id, newName string) (models.BlockTypeDefinition, error) {
	args := m.Called(ctx, id, newName)
	return args.Get(0).(models.BlockTypeDefinition), args.Error(1)
}

func (m *MockRegistryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRegistryService) Defaults(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockRegistryService) Validate(ctx context.Context, id string, data map[string]any) error {
	return m.Called(ctx, id, data).Error(0)
}

type MockMagazineService struct {
	mock.Mock
}

func (m *MockMagazineService) ListBlocks(ctx context.Context, id uuid.UUID) ([]models.Block, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockMagazineService) AddBlock(ctx context.Context, id uuid.UUID, req dto.CreateBlockRequest) (models.Block, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Block), args.Error(1)
}

func (m *MockMagazineService) UpdateBlock(ctx context.Context, id, blockID uuid.UUID, req dto.UpdateBlockRequest) (models.Block, error) {
	args := m.Called(ctx, id, blockID, req)
	return args.Get(0).(models.Block), args.Error(1)
}

func (m *MockMagazineService) ToggleBlockVisibility(ctx context.Context, id, blockID uuid.UUID) (models.Block, error) {
	args := m.Called(ctx, id, blockID)
	return args.Get(0).(models.Block), args.Error(1)
}

func (m *MockMagazineService) DeleteBlock(ctx context.Context, id, blockID uuid.UUID) error {
	return m.Called(ctx, id, blockID).Error(0)
}

func (m *MockMagazineService) ReorderBlocks(ctx context.Context, id uuid.UUID, ids []uuid.UUID) ([]models.Block, error) {
	args := m.Called(ctx, id, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Block), args.Error(1)
}

func (m *MockMagazineService) CreateMagazine(ctx context.Context, req dto.CreateMagazineRequest) (models.Magazine, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineService) GetMagazine(ctx context.Context, id uuid.UUID) (models.Magazine, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineService) GetPublished(ctx context.Context, slug string) (models.Magazine, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineService) ListMagazines(ctx context.Context, filter models.MagazineFilter) (*dto.MagazineListResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MagazineListResponse), args.Error(1)
}

func (m *MockMagazineService) UpdateMagazine(ctx context.Context, id uuid.UUID, req dto.UpdateMagazineRequest) (models.Magazine, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineService) ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest) (models.Magazine, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Magazine), args.Error(1)
}

func (m *MockMagazineService) DeleteMagazine(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMagazineService) RecordView(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMagazineService) SEOReport(ctx context.Context, id uuid.UUID) (seo.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(seo.Report), args.Error(1)
}

func (m *MockMagazineService) JSONLD(ctx context.Context, slug string) (map[string]any, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

type MockAdService struct {
	mock.Mock
}

func (m *MockAdService) CreateAd(ctx context.Context, req dto.AdRequest) (models.Ad, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdService) GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdService) ListAds(ctx context.Context, status string) ([]models.Ad, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ad), args.Error(1)
}

func (m *MockAdService) UpdateAd(ctx context.Context, id uuid.UUID, req dto.AdRequest) (models.Ad, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.Ad), args.Error(1)
}

func (m *MockAdService) DeleteAd(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdService) RecordView(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdService) RecordClick(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAdService) Stats(ctx context.Context, id uuid.UUID) (dto.AdStatsResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(dto.AdStatsResponse), args.Error(1)
}

// MockAnalyticsService runs dispatched writes inline so tests can assert on
// their effects.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Dispatch(kind string, fn func(ctx context.Context) error) {
	m.Called(kind)
	_ = fn(context.Background())
}

func (m *MockAnalyticsService) TrackPageview(req dto.PageviewRequest, userAgent string) error {
	return m.Called(req, userAgent).Error(0)
}

func (m *MockAnalyticsService) TrackEvent(req dto.EventRequest, userAgent string) error {
	return m.Called(req, userAgent).Error(0)
}

func (m *MockAnalyticsService) Overview(ctx context.Context, days int) (models.AnalyticsOverview, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(models.AnalyticsOverview), args.Error(1)
}

func (m *MockAnalyticsService) Trend(ctx context.Context, days int) ([]models.DayCount, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayCount), args.Error(1)
}

func (m *MockAnalyticsService) TopPages(ctx context.Context, limit int) ([]models.PageCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PageCount), args.Error(1)
}

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck(context.Context) error {
	return s.err
}
