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

type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) SaveArticle(ctx context.Context, a models.Article) (uuid.UUID, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockArticleRepository) UpdateArticleFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockArticleRepository) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepository) GetArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetArticles(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Article), args.Int(1), args.Error(2)
}

var fixedNow = time.Date(2025, 6, 21, 9, 30, 0, 0, time.UTC)

func newTestService() (*ArticleService, *MockArticleRepository) {
	repo := new(MockArticleRepository)
	svc := NewArticleService(slog.Default(), repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestArticleService_CreateArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug and defaults to draft", func(t *testing.T) {
		svc, repo := newTestService()
		id := uuid.New()

		repo.On("SaveArticle", ctx, mock.MatchedBy(func(a models.Article) bool {
			return a.Slug == "le-spiagge-piu-belle" && a.Status == models.StatusDraft && a.PublishedAt == nil
		})).Return(id, nil)
		repo.On("GetArticleByID", ctx, id).Return(&models.Article{ID: id, Slug: "le-spiagge-piu-belle", Status: models.StatusDraft}, nil)

		resp, err := svc.CreateArticle(ctx, dto.CreateArticleRequest{Title: "Le spiagge più belle", Content: "..."})
		require.NoError(t, err)
		assert.Equal(t, "le-spiagge-piu-belle", resp.Slug)
		assert.Equal(t, "draft", resp.Status)
		assert.NotNil(t, resp.Tags)
		repo.AssertExpectations(t)
	})

	t.Run("published gets a date", func(t *testing.T) {
		svc, repo := newTestService()
		id := uuid.New()

		repo.On("SaveArticle", ctx, mock.MatchedBy(func(a models.Article) bool {
			return a.PublishedAt != nil && a.PublishedAt.Equal(fixedNow)
		})).Return(id, nil)
		repo.On("GetArticleByID", ctx, id).Return(&models.Article{ID: id, Status: models.StatusPublished}, nil)

		_, err := svc.CreateArticle(ctx, dto.CreateArticleRequest{Title: "Mare", Content: "...", Status: "published"})
		require.NoError(t, err)
	})

	t.Run("derived slug conflict retries with suffix", func(t *testing.T) {
		svc, repo := newTestService()
		id := uuid.New()
		suffixed := "mare-" + "1750498200"

		repo.On("SaveArticle", ctx, mock.MatchedBy(func(a models.Article) bool { return a.Slug == "mare" })).
			Return(uuid.Nil, storage.ErrSlugTaken).Once()
		repo.On("SaveArticle", ctx, mock.MatchedBy(func(a models.Article) bool { return a.Slug == suffixed })).
			Return(id, nil).Once()
		repo.On("GetArticleByID", ctx, id).Return(&models.Article{ID: id, Slug: suffixed}, nil)

		resp, err := svc.CreateArticle(ctx, dto.CreateArticleRequest{Title: "Mare", Content: "..."})
		require.NoError(t, err)
		assert.Equal(t, suffixed, resp.Slug)
	})

	t.Run("explicit slug conflict", func(t *testing.T) {
		svc, repo := newTestService()

		repo.On("SaveArticle", ctx, mock.Anything).Return(uuid.Nil, storage.ErrSlugTaken).Once()

		_, err := svc.CreateArticle(ctx, dto.CreateArticleRequest{Title: "Mare", Slug: "mare", Content: "..."})
		assert.ErrorIs(t, err, storage.ErrConflict)
		repo.AssertNumberOfCalls(t, "SaveArticle", 1)
	})
}

func TestArticleService_UpdateArticle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id := uuid.New()
	title := "Nuovo titolo"
	status := "published"

	repo.On("GetArticleByID", ctx, id).Return(&models.Article{ID: id, Title: "Vecchio", Slug: "vecchio", Status: models.StatusDraft}, nil)
	repo.On("UpdateArticleFields", ctx, id, map[string]interface{}{
		"title":        title,
		"status":       "published",
		"published_at": fixedNow,
	}).Return(nil)

	_, err := svc.UpdateArticle(ctx, id, dto.UpdateArticleRequest{Title: &title, Status: &status})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestArticleService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id := uuid.New()
	repo.On("GetArticleByID", ctx, id).Return(nil, storage.ErrNotFound)
	repo.On("DeleteArticle", ctx, id).Return(storage.ErrNotFound)

	_, err := svc.GetArticle(ctx, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteArticle(ctx, id), storage.ErrNotFound)
}

func TestArticleService_ListArticles(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	repo.On("GetArticles", ctx, models.ArticleFilter{Status: "published", Tags: []string{"mare"}, Page: 1, PerPage: 10}).
		Return([]models.Article{{Title: "Mare"}, {Title: "Monti"}}, 2, nil)

	resp, err := svc.ListArticles(ctx, models.ArticleFilter{Status: "published", Tags: []string{"mare"}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Len(t, resp.Articles, 2)
	assert.Equal(t, 10, resp.PerPage)
}

func TestArticleService_PublishAndArchive(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	id := uuid.New()
	repo.On("UpdateArticleFields", ctx, id, map[string]interface{}{"status": "published", "published_at": fixedNow}).Return(nil)
	repo.On("UpdateArticleFields", ctx, id, map[string]interface{}{"status": "archived"}).Return(nil)
	repo.On("GetArticleByID", ctx, id).Return(&models.Article{ID: id}, nil)

	_, err := svc.PublishArticle(ctx, id)
	require.NoError(t, err)

	_, err = svc.ArchiveArticle(ctx, id)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}
