package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/schema"
	"magazine_cms/internal/lib/logger/sl"
	"magazine_cms/internal/lib/slug"
	"magazine_cms/internal/repository"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"
)

const (
	fallbackID    = "block"
	maxIDAttempts = 1000
)

// DefinitionSource is a read-only view over a set of block type definitions.
type DefinitionSource interface {
	List(ctx context.Context) ([]models.BlockTypeDefinition, error)
	Get(ctx context.Context, id string) (models.BlockTypeDefinition, error)
}

// Catalog is the immutable predefined source.
type Catalog interface {
	DefinitionSource
	Has(id string) bool
}

// RegistryService merges the predefined catalog with the custom store.
// Predefined ids always win and can never be modified through it.
type RegistryService struct {
	log     *slog.Logger
	catalog Catalog
	store   repository.BlockTypeRepository
	now     func() time.Time
}

func NewRegistryService(log *slog.Logger, catalog Catalog, store repository.BlockTypeRepository) *RegistryService {
	return &RegistryService{
		log:     log,
		catalog: catalog,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// All returns predefined definitions in catalog order followed by custom ones
// in creation order.
func (s *RegistryService) All(ctx context.Context) ([]models.BlockTypeDefinition, error) {
	const op = "registry_service.All"

	predefined, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	custom, err := s.store.List(ctx)
	if err != nil {
		s.log.Error("failed to list custom block types", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.BlockTypeDefinition, 0, len(predefined)+len(custom))
	out = append(out, predefined...)
	for _, def := range custom {
		if s.catalog.Has(def.ID) {
			s.log.Warn("custom block type shadows a predefined id", slog.String("op", op), slog.String("id", def.ID))
			continue
		}
		out = append(out, def)
	}

	return out, nil
}

func (s *RegistryService) AllByID(ctx context.Context) (map[string]models.BlockTypeDefinition, error) {
	const op = "registry_service.AllByID"

	defs, err := s.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]models.BlockTypeDefinition, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}

	return byID, nil
}

func (s *RegistryService) Get(ctx context.Context, id string) (models.BlockTypeDefinition, error) {
	const op = "registry_service.Get"

	var (
		def models.BlockTypeDefinition
		err error
	)
	if s.catalog.Has(id) {
		def, err = s.catalog.Get(ctx, id)
	} else {
		def, err = s.store.Get(ctx, id)
	}
	if err != nil {
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	return def, nil
}

func (s *RegistryService) IsCustom(ctx context.Context, id string) (bool, error) {
	const op = "registry_service.IsCustom"

	if s.catalog.Has(id) {
		return false, nil
	}

	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// Create stores def as a new custom block type. The id is derived from the
// name and suffixed with -1, -2, ... until it is free in both sources.
func (s *RegistryService) Create(ctx context.Context, def models.BlockTypeDefinition) (models.BlockTypeDefinition, error) {
	const op = "registry_service.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", def.Name),
	)

	if err := models.FromOzzo(def.Validate()); err != nil {
		log.Info("invalid block type definition", sl.Err(err))
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	base := slug.ID(def.Name)
	if base == "" {
		base = fallbackID
	}

	now := s.now()
	def.IsCustom = true
	def.CreatedAt = &now
	def.UpdatedAt = nil
	def.DefaultData = schema.DefaultData(def.Fields)
	if def.Tags == nil {
		def.Tags = []string{}
	}

	for n := 0; n < maxIDAttempts; n++ {
		def.ID = candidateID(base, n)
		if s.catalog.Has(def.ID) {
			continue
		}

		err := s.store.Create(ctx, def)
		if err == nil {
			log.Info("block type created", slog.String("id", def.ID))
			return def, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			log.Error("failed to save block type", sl.Err(err))
			return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Error("no free id left", slog.String("base", base))
	return models.BlockTypeDefinition{}, fmt.Errorf("%s: id %q: %w", op, base, storage.ErrConflict)
}

// Update merges req over a custom definition. Predefined ids are read-only.
func (s *RegistryService) Update(ctx context.Context, id string, req dto.UpdateBlockTypeRequest) (models.BlockTypeDefinition, error) {
	const op = "registry_service.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if s.catalog.Has(id) {
		log.Warn("attempt to update predefined block type")
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: block type %q: %w", op, id, models.ErrForbidden)
	}

	def, err := s.store.Get(ctx, id)
	if err != nil {
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != nil {
		def.Name = *req.Name
	}
	if req.Description != nil {
		def.Description = *req.Description
	}
	if req.Icon != nil {
		def.Icon = *req.Icon
	}
	if req.Category != nil {
		def.Category = *req.Category
	}
	if req.Tags != nil {
		def.Tags = req.Tags
	}
	if req.Gradient != nil {
		def.Gradient = *req.Gradient
	}
	if req.SchemaType != nil {
		def.SchemaType = *req.SchemaType
	}
	if req.Fields != nil {
		def.Fields = req.Fields
		def.DefaultData = schema.DefaultData(def.Fields)
	}

	if err := models.FromOzzo(def.Validate()); err != nil {
		log.Info("invalid block type definition", sl.Err(err))
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	def.ID = id
	def.IsCustom = true
	def.UpdatedAt = &now

	if err := s.store.Update(ctx, def); err != nil {
		log.Error("failed to update block type", sl.Err(err))
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("block type updated")

	return def, nil
}

// Duplicate copies any definition, predefined or custom, into a new custom one.
func (s *RegistryService) Duplicate(ctx context.Context, id, newName string) (models.BlockTypeDefinition, error) {
	const op = "registry_service.Duplicate"

	src, err := s.Get(ctx, id)
	if err != nil {
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	dup := schema.Clone(src)
	dup.ID = ""
	dup.Name = newName
	dup.CreatedAt = nil
	dup.UpdatedAt = nil

	created, err := s.Create(ctx, dup)
	if err != nil {
		return models.BlockTypeDefinition{}, fmt.Errorf("%s: %w", op, err)
	}

	return created, nil
}

func (s *RegistryService) Delete(ctx context.Context, id string) error {
	const op = "registry_service.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id),
	)

	if s.catalog.Has(id) {
		log.Warn("attempt to delete predefined block type")
		return fmt.Errorf("%s: block type %q: %w", op, id, models.ErrForbidden)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("block type deleted")

	return nil
}

// Defaults returns a fresh default payload for the block type.
func (s *RegistryService) Defaults(ctx context.Context, id string) (map[string]any, error) {
	const op = "registry_service.Defaults"

	def, err := s.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return schema.DefaultData(def.Fields), nil
}

// Validate checks a payload against the block type without storing anything.
func (s *RegistryService) Validate(ctx context.Context, id string, data map[string]any) error {
	const op = "registry_service.Validate"

	def, err := s.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := schema.ValidatePayload(def, schema.FillDefaults(def, data)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func candidateID(base string, n int) string {
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
