package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/seo"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

// ChildPageService manages sub-pages of a magazine. A child page has its own
// block sequence and its slug is unique within the parent magazine.
type ChildPageService struct {
	log       *slog.Logger
	pages     repository.ChildPageRepository
	magazines repository.MagazineRepository
	blocks    *BlockEditor
	now       func() time.Time
}

func NewChildPageService(
	log *slog.Logger,
	pages repository.ChildPageRepository,
	magazines repository.MagazineRepository,
	blocks *BlockEditor,
) *ChildPageService {
	return &ChildPageService{
		log:       log,
		pages:     pages,
		magazines: magazines,
		blocks:    blocks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateChildPage stores a draft page under the magazine. With CopyBlocks set
// the magazine's blocks are copied in their current order.
func (s *ChildPageService) CreateChildPage(ctx context.Context, magazineID uuid.UUID, req dto.CreateChildPageRequest) (models.ChildPage, error) {
	const op = "childpage_service.CreateChildPage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("magazine_id", magazineID.String()),
		slog.String("name", req.Name),
	)

	if _, err := s.magazines.GetMagazineByID(ctx, magazineID); err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	slugValue, err := resolveSlug(req.Slug, req.Name)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	p := models.ChildPage{
		ParentMagazineID: magazineID,
		Name:             req.Name,
		Slug:             slugValue,
		Description:      req.Description,
		Status:           models.StatusDraft,
	}
	if req.SEO != nil {
		p.SEO = *req.SEO
	}

	var copyFrom *models.BlockParent
	if req.CopyBlocks {
		parent := models.MagazineParent(magazineID)
		copyFrom = &parent
	}

	saved, err := s.pages.SaveChildPage(ctx, p, copyFrom)
	if err != nil {
		log.Error("failed to save child page", sl.Err(err))
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	if saved.Blocks, err = s.blocks.List(ctx, models.ChildPageParent(saved.ID)); err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("child page created",
		slog.String("id", saved.ID.String()),
		slog.Int("copied_blocks", len(saved.Blocks)),
	)

	return saved, nil
}

func (s *ChildPageService) GetChildPage(ctx context.Context, id uuid.UUID) (models.ChildPage, error) {
	const op = "childpage_service.GetChildPage"

	p, err := s.pages.GetChildPageByID(ctx, id)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	if p.Blocks, err = s.blocks.List(ctx, models.ChildPageParent(id)); err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// ListChildPages returns the pages of a magazine without their blocks.
func (s *ChildPageService) ListChildPages(ctx context.Context, magazineID uuid.UUID) ([]models.ChildPage, error) {
	const op = "childpage_service.ListChildPages"

	if _, err := s.magazines.GetMagazineByID(ctx, magazineID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pages, err := s.pages.ListChildPages(ctx, magazineID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pages, nil
}

// GetPublished resolves a published page by magazine slug and page slug. The
// parent magazine must be published as well.
func (s *ChildPageService) GetPublished(ctx context.Context, magazineSlug, pageSlug string) (models.ChildPage, error) {
	const op = "childpage_service.GetPublished"

	m, err := s.magazines.GetMagazineBySlug(ctx, magazineSlug)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}
	if m.Status != models.StatusPublished {
		return models.ChildPage{}, fmt.Errorf("%s: magazine %q: %w", op, magazineSlug, storage.ErrNotFound)
	}

	p, err := s.pages.GetChildPageBySlug(ctx, m.ID, pageSlug)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}
	if p.Status != models.StatusPublished {
		return models.ChildPage{}, fmt.Errorf("%s: child page %q: %w", op, pageSlug, storage.ErrNotFound)
	}

	blocks, err := s.blocks.List(ctx, models.ChildPageParent(p.ID))
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Blocks = visibleOnly(blocks)

	return p, nil
}

func (s *ChildPageService) UpdateChildPage(ctx context.Context, id uuid.UUID, req dto.UpdateChildPageRequest) (models.ChildPage, error) {
	const op = "childpage_service.UpdateChildPage"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	p, err := s.pages.GetChildPageByID(ctx, id)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.SEO != nil {
		p.SEO = *req.SEO
	}
	if req.Slug != nil && *req.Slug != p.Slug {
		if p.Slug, err = resolveSlug(*req.Slug, p.Name); err != nil {
			return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.pages.UpdateChildPage(ctx, p)
	if err != nil {
		log.Error("failed to update child page", sl.Err(err))
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	if updated.Blocks, err = s.blocks.List(ctx, models.ChildPageParent(id)); err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

// ChangeStatus follows the same publishing rules as magazines.
func (s *ChildPageService) ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest) (models.ChildPage, error) {
	const op = "childpage_service.ChangeStatus"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
		slog.String("status", req.Status),
	)

	status := models.Status(req.Status)
	if !status.Valid() {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "must be one of draft, published, archived"))
	}

	p, err := s.GetChildPage(ctx, id)
	if err != nil {
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	publishDate := p.PublishDate
	if req.PublishDate != nil {
		publishDate = req.PublishDate
	}

	if status == models.StatusPublished {
		if err := s.blocks.ValidateForPublish(ctx, p.Blocks); err != nil {
			log.Info("child page not publishable", sl.Err(err))
			return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
		}
		if publishDate == nil {
			now := s.now()
			publishDate = &now
		}
	}

	if err := s.pages.UpdateChildPageStatus(ctx, id, status, publishDate); err != nil {
		log.Error("failed to change status", sl.Err(err))
		return models.ChildPage{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Status = status
	p.PublishDate = publishDate
	p.Version++

	log.Info("child page status changed")

	return p, nil
}

func (s *ChildPageService) DeleteChildPage(ctx context.Context, id uuid.UUID) error {
	const op = "childpage_service.DeleteChildPage"

	if err := s.pages.DeleteChildPage(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("child page deleted", slog.String("op", op), slog.String("id", id.String()))

	return nil
}

func (s *ChildPageService) SEOReport(ctx context.Context, id uuid.UUID) (seo.Report, error) {
	const op = "childpage_service.SEOReport"

	p, err := s.pages.GetChildPageByID(ctx, id)
	if err != nil {
		return seo.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	return seo.Analyze(SEOInput(p.SEO)), nil
}

func (s *ChildPageService) ListBlocks(ctx context.Context, id uuid.UUID) ([]models.Block, error) {
	const op = "childpage_service.ListBlocks"

	if _, err := s.pages.GetChildPageByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks, err := s.blocks.List(ctx, models.ChildPageParent(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}

func (s *ChildPageService) AddBlock(ctx context.Context, id uuid.UUID, req dto.CreateBlockRequest) (models.Block, error) {
	return s.blocks.Add(ctx, models.ChildPageParent(id), req)
}

func (s *ChildPageService) UpdateBlock(ctx context.Context, id, blockID uuid.UUID, req dto.UpdateBlockRequest) (models.Block, error) {
	return s.blocks.Update(ctx, models.ChildPageParent(id), blockID, req)
}

func (s *ChildPageService) ToggleBlockVisibility(ctx context.Context, id, blockID uuid.UUID) (models.Block, error) {
	return s.blocks.ToggleVisibility(ctx, models.ChildPageParent(id), blockID)
}

func (s *ChildPageService) DeleteBlock(ctx context.Context, id, blockID uuid.UUID) error {
	return s.blocks.Delete(ctx, models.ChildPageParent(id), blockID)
}

func (s *ChildPageService) ReorderBlocks(ctx context.Context, id uuid.UUID, ids []uuid.UUID) ([]models.Block, error) {
	return s.blocks.Reorder(ctx, models.ChildPageParent(id), ids)
}
