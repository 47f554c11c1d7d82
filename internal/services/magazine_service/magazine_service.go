package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"magazine_cms/internal/domain/jsonld"
	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/seo"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/lib/slug"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

type MagazineService struct {
	log    *slog.Logger
	repo   repository.MagazineRepository
	blocks *BlockEditor
	site   jsonld.Site
	now    func() time.Time
}

func NewMagazineService(log *slog.Logger, repo repository.MagazineRepository, blocks *BlockEditor, site jsonld.Site) *MagazineService {
	return &MagazineService{
		log:    log,
		repo:   repo,
		blocks: blocks,
		site:   site,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateMagazine stores a draft magazine. Without an explicit slug one is
// derived from the name; a taken slug is a conflict.
func (s *MagazineService) CreateMagazine(ctx context.Context, req dto.CreateMagazineRequest) (models.Magazine, error) {
	const op = "magazine_service.CreateMagazine"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", req.Name),
	)

	slugValue, err := resolveSlug(req.Slug, req.Name)
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	taken, err := s.repo.SlugExists(ctx, slugValue, uuid.Nil)
	if err != nil {
		log.Error("failed to check slug", sl.Err(err))
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}
	if taken {
		log.Info("slug already taken", slog.String("slug", slugValue))
		return models.Magazine{}, fmt.Errorf("%s: %q: %w", op, slugValue, storage.ErrSlugTaken)
	}

	m := models.Magazine{
		Name:          req.Name,
		Slug:          slugValue,
		Edition:       req.Edition,
		EditionNumber: req.EditionNumber,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		Status:        models.StatusDraft,
		Featured:      req.Featured,
		PublishDate:   req.PublishDate,
	}
	if req.SEO != nil {
		m.SEO = *req.SEO
	}

	saved, err := s.repo.SaveMagazine(ctx, m)
	if err != nil {
		log.Error("failed to save magazine", sl.Err(err))
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}
	saved.Blocks = []models.Block{}

	log.Info("magazine created", slog.String("id", saved.ID.String()), slog.String("slug", saved.Slug))

	return saved, nil
}

// GetMagazine returns the magazine with its full block sequence.
func (s *MagazineService) GetMagazine(ctx context.Context, id uuid.UUID) (models.Magazine, error) {
	const op = "magazine_service.GetMagazine"

	m, err := s.repo.GetMagazineByID(ctx, id)
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	if m.Blocks, err = s.blocks.List(ctx, models.MagazineParent(m.ID)); err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// GetPublished returns a published magazine by slug with only its visible
// blocks. Drafts and archived issues are reported as not found.
func (s *MagazineService) GetPublished(ctx context.Context, slugValue string) (models.Magazine, error) {
	const op = "magazine_service.GetPublished"

	m, err := s.repo.GetMagazineBySlug(ctx, slugValue)
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}
	if m.Status != models.StatusPublished {
		return models.Magazine{}, fmt.Errorf("%s: magazine %q: %w", op, slugValue, storage.ErrNotFound)
	}

	blocks, err := s.blocks.List(ctx, models.MagazineParent(m.ID))
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}
	m.Blocks = visibleOnly(blocks)

	return m, nil
}

func (s *MagazineService) ListMagazines(ctx context.Context, filter models.MagazineFilter) (*dto.MagazineListResponse, error) {
	const op = "magazine_service.ListMagazines"

	magazines, total, err := s.repo.ListMagazines(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	return &dto.MagazineListResponse{
		Magazines:  magazines,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// UpdateMagazine applies a partial update. The slug only changes when the
// request sets it explicitly.
func (s *MagazineService) UpdateMagazine(ctx context.Context, id uuid.UUID, req dto.UpdateMagazineRequest) (models.Magazine, error) {
	const op = "magazine_service.UpdateMagazine"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	m, err := s.repo.GetMagazineByID(ctx, id)
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Edition != nil {
		m.Edition = *req.Edition
	}
	if req.EditionNumber != nil {
		m.EditionNumber = *req.EditionNumber
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.CoverImage != nil {
		m.CoverImage = *req.CoverImage
	}
	if req.SEO != nil {
		m.SEO = *req.SEO
	}
	if req.Featured != nil {
		m.Featured = *req.Featured
	}
	if req.PublishDate != nil {
		m.PublishDate = req.PublishDate
	}

	if req.Slug != nil && *req.Slug != m.Slug {
		slugValue, err := resolveSlug(*req.Slug, m.Name)
		if err != nil {
			return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
		}

		taken, err := s.repo.SlugExists(ctx, slugValue, id)
		if err != nil {
			return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			log.Info("slug already taken", slog.String("slug", slugValue))
			return models.Magazine{}, fmt.Errorf("%s: %q: %w", op, slugValue, storage.ErrSlugTaken)
		}
		m.Slug = slugValue
	}

	updated, err := s.repo.UpdateMagazine(ctx, m)
	if err != nil {
		log.Error("failed to update magazine", sl.Err(err))
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	if updated.Blocks, err = s.blocks.List(ctx, models.MagazineParent(id)); err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("magazine updated", slog.Int("version", updated.Version))

	return updated, nil
}

// ChangeStatus moves the magazine between draft, published and archived.
// Publishing validates every block and stamps the publish date if unset.
func (s *MagazineService) ChangeStatus(ctx context.Context, id uuid.UUID, req dto.ChangeStatusRequest) (models.Magazine, error) {
	const op = "magazine_service.ChangeStatus"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
		slog.String("status", req.Status),
	)

	status := models.Status(req.Status)
	if !status.Valid() {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, models.NewValidationError("status", "must be one of draft, published, archived"))
	}

	m, err := s.GetMagazine(ctx, id)
	if err != nil {
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	publishDate := m.PublishDate
	if req.PublishDate != nil {
		publishDate = req.PublishDate
	}

	if status == models.StatusPublished {
		if err := s.blocks.ValidateForPublish(ctx, m.Blocks); err != nil {
			log.Info("magazine not publishable", sl.Err(err))
			return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
		}
		if publishDate == nil {
			now := s.now()
			publishDate = &now
		}
	}

	if err := s.repo.UpdateMagazineStatus(ctx, id, status, publishDate); err != nil {
		log.Error("failed to change status", sl.Err(err))
		return models.Magazine{}, fmt.Errorf("%s: %w", op, err)
	}

	m.Status = status
	m.PublishDate = publishDate
	m.Version++

	log.Info("magazine status changed")

	return m, nil
}

// DeleteMagazine removes the magazine, its child pages and every block.
func (s *MagazineService) DeleteMagazine(ctx context.Context, id uuid.UUID) error {
	const op = "magazine_service.DeleteMagazine"

	if err := s.repo.DeleteMagazine(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("magazine deleted", slog.String("op", op), slog.String("id", id.String()))

	return nil
}

func (s *MagazineService) RecordView(ctx context.Context, id uuid.UUID) error {
	const op = "magazine_service.RecordView"

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SEOReport scores the magazine's stored SEO metadata.
func (s *MagazineService) SEOReport(ctx context.Context, id uuid.UUID) (seo.Report, error) {
	const op = "magazine_service.SEOReport"

	m, err := s.repo.GetMagazineByID(ctx, id)
	if err != nil {
		return seo.Report{}, fmt.Errorf("%s: %w", op, err)
	}

	return seo.Analyze(SEOInput(m.SEO)), nil
}

// JSONLD renders the Schema.org graph of a published magazine.
func (s *MagazineService) JSONLD(ctx context.Context, slugValue string) (map[string]any, error) {
	const op = "magazine_service.JSONLD"

	m, err := s.GetPublished(ctx, slugValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return jsonld.Generate(s.site, m, m.Blocks), nil
}

// Block operations scoped to a magazine. The magazine must exist.

func (s *MagazineService) ListBlocks(ctx context.Context, id uuid.UUID) ([]models.Block, error) {
	const op = "magazine_service.ListBlocks"

	if _, err := s.repo.GetMagazineByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	blocks, err := s.blocks.List(ctx, models.MagazineParent(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}

func (s *MagazineService) AddBlock(ctx context.Context, id uuid.UUID, req dto.CreateBlockRequest) (models.Block, error) {
	return s.blocks.Add(ctx, models.MagazineParent(id), req)
}

func (s *MagazineService) UpdateBlock(ctx context.Context, id, blockID uuid.UUID, req dto.UpdateBlockRequest) (models.Block, error) {
	return s.blocks.Update(ctx, models.MagazineParent(id), blockID, req)
}

func (s *MagazineService) ToggleBlockVisibility(ctx context.Context, id, blockID uuid.UUID) (models.Block, error) {
	return s.blocks.ToggleVisibility(ctx, models.MagazineParent(id), blockID)
}

func (s *MagazineService) DeleteBlock(ctx context.Context, id, blockID uuid.UUID) error {
	return s.blocks.Delete(ctx, models.MagazineParent(id), blockID)
}

func (s *MagazineService) ReorderBlocks(ctx context.Context, id uuid.UUID, ids []uuid.UUID) ([]models.Block, error) {
	return s.blocks.Reorder(ctx, models.MagazineParent(id), ids)
}

// SEOInput maps stored metadata onto the analyzer input.
func SEOInput(meta models.SEOMeta) seo.Input {
	return seo.Input{
		MetaTitle:       meta.MetaTitle,
		MetaDescription: meta.MetaDescription,
		MetaKeywords:    meta.MetaKeywords,
		CanonicalURL:    meta.CanonicalURL,
		OGImage:         meta.OGImage,
		RobotsMeta:      meta.RobotsMeta,
	}
}

func resolveSlug(explicit, name string) (string, error) {
	if explicit != "" {
		if !slug.Valid(explicit) {
			return "", models.NewValidationError("slug", "must contain only lowercase letters, digits and single dashes")
		}
		return explicit, nil
	}

	derived := slug.Make(name)
	if derived == "" {
		return "", models.NewValidationError("slug", "cannot be derived from name")
	}
	return derived, nil
}

func visibleOnly(blocks []models.Block) []models.Block {
	out := make([]models.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Visible {
			out = append(out, b)
		}
	}
	return out
}

