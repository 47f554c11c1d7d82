package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/lib/slug"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

type ArticleService struct {
	log  *slog.Logger
	repo repository.ArticleRepository
	now  func() time.Time
}

func NewArticleService(log *slog.Logger, repo repository.ArticleRepository) *ArticleService {
	return &ArticleService{
		log:  log,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateArticle stores a standalone article. A derived slug that is already
// taken gets a timestamp suffix; an explicit one is reported as a conflict.
func (s *ArticleService) CreateArticle(ctx context.Context, req dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	const op = "article_service.CreateArticle"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	a := models.Article{
		Title:       req.Title,
		Slug:        req.Slug,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Author:      req.Author,
		Category:    req.Category,
		Tags:        req.Tags,
		MagazineID:  req.MagazineID,
		Status:      models.Status(req.Status),
		PublishedAt: req.PublishedAt,
		Metadata:    req.Metadata,
	}

	derived := a.Slug == ""
	if derived {
		a.Slug = slug.Make(a.Title)
		if a.Slug == "" {
			return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("slug", "cannot be derived from title"))
		}
	}

	if a.Status == "" {
		a.Status = models.StatusDraft
	}
	if !a.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "must be one of draft, published, archived"))
	}

	if a.Status == models.StatusPublished && a.PublishedAt == nil {
		now := s.now()
		a.PublishedAt = &now
	}

	id, err := s.repo.SaveArticle(ctx, a)
	if err != nil && derived && errors.Is(err, storage.ErrSlugTaken) {
		a.Slug = a.Slug + "-" + strconv.FormatInt(s.now().Unix(), 10)
		log.Warn("slug conflict, retrying with suffix", slog.String("slug", a.Slug))
		id, err = s.repo.SaveArticle(ctx, a)
	}
	if err != nil {
		log.Error("failed to create article", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article created", slog.String("id", id.String()))

	return s.toResponse(ctx, id)
}

// UpdateArticle applies only the fields present in req. Moving to published
// stamps published_at unless the request carries one.
func (s *ArticleService) UpdateArticle(ctx context.Context, id uuid.UUID, req dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	const op = "article_service.UpdateArticle"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	existing, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Slug != nil && *req.Slug != existing.Slug {
		value := *req.Slug
		if value == "" {
			title := existing.Title
			if req.Title != nil {
				title = *req.Title
			}
			value = slug.Make(title)
		}
		updates["slug"] = value
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.MagazineID != nil {
		updates["magazine_id"] = *req.MagazineID
	}
	if req.PublishedAt != nil {
		updates["published_at"] = *req.PublishedAt
	}
	if req.Metadata != nil {
		updates["metadata"] = req.Metadata
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "must be one of draft, published, archived"))
		}
		updates["status"] = string(status)

		_, hasDate := updates["published_at"]
		if status == models.StatusPublished && existing.Status != models.StatusPublished && !hasDate {
			updates["published_at"] = s.now()
		}
	}

	if err := s.repo.UpdateArticleFields(ctx, id, updates); err != nil {
		log.Error("failed to update article", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article updated", slog.Int("fields", len(updates)))

	return s.toResponse(ctx, id)
}

func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	const op = "article_service.GetArticle"

	resp, err := s.toResponse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

func (s *ArticleService) ListArticles(ctx context.Context, filter models.ArticleFilter) (*dto.ArticleListResponse, error) {
	const op = "article_service.ListArticles"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 10
	}

	articles, total, err := s.repo.GetArticles(ctx, filter)
	if err != nil {
		s.log.Error("failed to list articles", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.ArticleListResponse{
		Articles:   make([]dto.ArticleResponse, 0, len(articles)),
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}
	for i := range articles {
		resp.Articles = append(resp.Articles, *toArticleResponse(&articles[i]))
	}

	return resp, nil
}

func (s *ArticleService) PublishArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	const op = "article_service.PublishArticle"

	err := s.repo.UpdateArticleFields(ctx, id, map[string]interface{}{
		"status":       string(models.StatusPublished),
		"published_at": s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("article published", slog.String("op", op), slog.String("id", id.String()))

	return s.toResponse(ctx, id)
}

func (s *ArticleService) ArchiveArticle(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	const op = "article_service.ArchiveArticle"

	err := s.repo.UpdateArticleFields(ctx, id, map[string]interface{}{
		"status": string(models.StatusArchived),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("article archived", slog.String("op", op), slog.String("id", id.String()))

	return s.toResponse(ctx, id)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	const op = "article_service.DeleteArticle"

	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("article deleted", slog.String("op", op), slog.String("id", id.String()))

	return nil
}

func (s *ArticleService) toResponse(ctx context.Context, id uuid.UUID) (*dto.ArticleResponse, error) {
	a, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toArticleResponse(a), nil
}

func toArticleResponse(a *models.Article) *dto.ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}

	return &dto.ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		CoverImage:  a.CoverImage,
		Author:      a.Author,
		Category:    a.Category,
		Tags:        tags,
		MagazineID:  a.MagazineID,
		Status:      string(a.Status),
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Metadata:    a.Metadata,
	}
}
