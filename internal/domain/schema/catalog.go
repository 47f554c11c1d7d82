// Package schema holds the block type catalog and the rules that turn a block
// type definition into default data and payload validation.
package schema

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/storage"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the immutable set of predefined block types. Lookups return deep
// copies so no caller can alter the source of truth.
type Catalog struct {
	defs []models.BlockTypeDefinition
	byID map[string]int
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog parses the embedded catalog on first use.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(catalogYAML)
	})

	return defaultCatalog, defaultCatalogErr
}

// MustDefaultCatalog is DefaultCatalog for program start-up.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic("cannot load block catalog: " + err.Error())
	}
	return c
}

// LoadCatalog parses and validates a YAML list of block type definitions.
func LoadCatalog(data []byte) (*Catalog, error) {
	const op = "schema.LoadCatalog"

	var defs []models.BlockTypeDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Catalog{
		defs: make([]models.BlockTypeDefinition, 0, len(defs)),
		byID: make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("%s: definition %q has no id", op, def.Name)
		}
		if _, ok := c.byID[def.ID]; ok {
			return nil, fmt.Errorf("%s: duplicate id %q", op, def.ID)
		}
		if err := models.FromOzzo(def.Validate()); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, def.ID, err)
		}

		def.IsCustom = false
		def.DefaultData = DefaultData(def.Fields)
		if def.Tags == nil {
			def.Tags = []string{}
		}

		c.byID[def.ID] = len(c.defs)
		c.defs = append(c.defs, def)
	}

	return c, nil
}

// List returns every predefined definition in catalog order.
func (c *Catalog) List(_ context.Context) ([]models.BlockTypeDefinition, error) {
	out := make([]models.BlockTypeDefinition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, Clone(def))
	}
	return out, nil
}

// Get returns the predefined definition with the given id or storage.ErrNotFound.
func (c *Catalog) Get(_ context.Context, id string) (models.BlockTypeDefinition, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.BlockTypeDefinition{}, fmt.Errorf("block type %q: %w", id, storage.ErrNotFound)
	}
	return Clone(c.defs[i]), nil
}

// Has reports whether id names a predefined block type.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of predefined block types.
func (c *Catalog) Len() int {
	return len(c.defs)
}
