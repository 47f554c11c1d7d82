package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/schema"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/metrics"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/google/uuid"
)

// BlockTypeProvider resolves block type definitions by id.
type BlockTypeProvider interface {
	Get(ctx context.Context, id string) (models.BlockTypeDefinition, error)
}

// BlockEditor edits the ordered block sequence of a magazine or child page.
// Payloads are completed with defaults and validated against their block type
// before anything is written.
type BlockEditor struct {
	log      *slog.Logger
	repo     repository.BlockRepository
	registry BlockTypeProvider
}

func NewBlockEditor(log *slog.Logger, repo repository.BlockRepository, registry BlockTypeProvider) *BlockEditor {
	return &BlockEditor{
		log:      log,
		repo:     repo,
		registry: registry,
	}
}

func (e *BlockEditor) List(ctx context.Context, parent models.BlockParent) ([]models.Block, error) {
	const op = "block_editor.List"

	blocks, err := e.repo.ListBlocks(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return blocks, nil
}

func (e *BlockEditor) Add(ctx context.Context, parent models.BlockParent, req dto.CreateBlockRequest) (models.Block, error) {
	const op = "block_editor.Add"

	log := e.log.With(
		slog.String("op", op),
		slog.String("parent", parent.String()),
		slog.String("type", req.Type),
	)

	def, err := e.registry.Get(ctx, req.Type)
	if err != nil {
		log.Info("unknown block type", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	data := schema.FillDefaults(def, req.Data)
	if err := schema.ValidatePayload(def, data); err != nil {
		log.Info("invalid block payload", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	block, err := e.repo.AddBlock(ctx, models.Block{
		ParentType: parent.Type,
		ParentID:   parent.ID,
		Type:       def.ID,
		Visible:    visible,
		Data:       data,
	})
	if err != nil {
		log.Error("failed to add block", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.BlocksCreated.WithLabelValues(string(parent.Type), def.ID).Inc()
	log.Info("block added", slog.String("block_id", block.ID.String()), slog.Int("position", block.Position))

	return block, nil
}

// Update merges req.Data over the stored payload, so omitted keys keep their
// values.
func (e *BlockEditor) Update(ctx context.Context, parent models.BlockParent, id uuid.UUID, req dto.UpdateBlockRequest) (models.Block, error) {
	const op = "block_editor.Update"

	log := e.log.With(
		slog.String("op", op),
		slog.String("parent", parent.String()),
		slog.String("block_id", id.String()),
	)

	block, err := e.owned(ctx, parent, id)
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	def, err := e.registry.Get(ctx, block.Type)
	if err != nil {
		log.Warn("block references a missing block type", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	merged := schema.CloneData(block.Data)
	if merged == nil {
		merged = map[string]any{}
	}
	for k, v := range req.Data {
		merged[k] = v
	}

	data := schema.FillDefaults(def, merged)
	if err := schema.ValidatePayload(def, data); err != nil {
		log.Info("invalid block payload", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	block.Data = data
	if req.Visible != nil {
		block.Visible = *req.Visible
	}

	updated, err := e.repo.UpdateBlock(ctx, block)
	if err != nil {
		log.Error("failed to update block", sl.Err(err))
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (e *BlockEditor) ToggleVisibility(ctx context.Context, parent models.BlockParent, id uuid.UUID) (models.Block, error) {
	const op = "block_editor.ToggleVisibility"

	block, err := e.repo.ToggleVisibility(ctx, parent, id)
	if err != nil {
		return models.Block{}, fmt.Errorf("%s: %w", op, err)
	}

	return block, nil
}

// Delete removes the block. Remaining positions are left as they are until
// the next reorder.
func (e *BlockEditor) Delete(ctx context.Context, parent models.BlockParent, id uuid.UUID) error {
	const op = "block_editor.Delete"

	if err := e.repo.DeleteBlock(ctx, parent, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e.log.Info("block deleted", slog.String("op", op), slog.String("block_id", id.String()))

	return nil
}

// Reorder assigns position = index to every block of the parent. ids must be
// a permutation of the parent's current block ids.
func (e *BlockEditor) Reorder(ctx context.Context, parent models.BlockParent, ids []uuid.UUID) ([]models.Block, error) {
	const op = "block_editor.Reorder"

	log := e.log.With(
		slog.String("op", op),
		slog.String("parent", parent.String()),
	)

	blocks, err := e.repo.Reorder(ctx, parent, ids)
	if err != nil {
		metrics.BlockReorders.WithLabelValues(string(parent.Type), "rejected").Inc()
		log.Info("reorder rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.BlockReorders.WithLabelValues(string(parent.Type), "ok").Inc()
	log.Info("blocks reordered", slog.Int("count", len(blocks)))

	return blocks, nil
}

// ValidateForPublish checks every block of the sequence, including hidden
// ones, and reports all violations with paths like "blocks[2].title".
func (e *BlockEditor) ValidateForPublish(ctx context.Context, blocks []models.Block) error {
	const op = "block_editor.ValidateForPublish"

	ve := &models.ValidationError{}

	for i, b := range blocks {
		prefix := "blocks[" + strconv.Itoa(i) + "]"

		def, err := e.registry.Get(ctx, b.Type)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, err)
			}
			ve.Add(prefix+".type", "unknown block type '"+b.Type+"'")
			continue
		}

		err = schema.ValidatePayload(def, schema.FillDefaults(def, b.Data))
		if err == nil {
			continue
		}

		var blockErr *models.ValidationError
		if !errors.As(err, &blockErr) {
			return fmt.Errorf("%s: %w", op, err)
		}
		for _, fe := range blockErr.Errors {
			field := prefix
			if fe.Field != "" {
				field += "." + fe.Field
			}
			ve.Add(field, fe.Message)
		}
	}

	if err := ve.OrNil(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (e *BlockEditor) owned(ctx context.Context, parent models.BlockParent, id uuid.UUID) (models.Block, error) {
	block, err := e.repo.GetBlock(ctx, id)
	if err != nil {
		return models.Block{}, err
	}
	if block.Parent() != parent {
		return models.Block{}, fmt.Errorf("block %s: %w", id, storage.ErrNotFound)
	}
	return block, nil
}
