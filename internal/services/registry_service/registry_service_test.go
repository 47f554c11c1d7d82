package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"magazine_cms/internal/domain/models"
	"magazine_cms/internal/domain/schema"
	"magazine_cms/internal/storage"
	"magazine_cms/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBlockTypeRepository struct {
	mock.Mock
}

func (m *MockBlockTypeRepository) List(ctx context.Context) ([]models.BlockTypeDefinition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.BlockTypeDefinition), args.Error(1)
}

func (m *MockBlockTypeRepository) Get(ctx context.Context, id string) (models.BlockTypeDefinition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.BlockTypeDefinition), args.Error(1)
}

func (m *MockBlockTypeRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockTypeRepository) Create(ctx context.Context, def models.BlockTypeDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockBlockTypeRepository) Update(ctx context.Context, def models.BlockTypeDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockBlockTypeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var fixedNow = time.Date(2025, 6, 21, 9, 30, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) (*RegistryService, *MockBlockTypeRepository) {
	t.Helper()

	store := new(MockBlockTypeRepository)
	svc := NewRegistryService(slog.Default(), schema.MustDefaultCatalog(), store)
	svc.now = func() time.Time { return fixedNow }

	return svc, store
}

func promoFields() []models.FieldDefinition {
	return []models.FieldDefinition{
		{ID: "title", Label: "Titolo", Type: models.FieldText, Required: true},
		{ID: "items", Label: "Voci", Type: models.FieldRepeater, Fields: []models.FieldDefinition{
			{ID: "label", Label: "Etichetta", Type: models.FieldText},
		}},
	}
}

func withID(id string) interface{} {
	return mock.MatchedBy(func(def models.BlockTypeDefinition) bool { return def.ID == id })
}

func TestRegistryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("id from name", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("promo-estate")).Return(nil).Once()

		def, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Promo Estate!", Fields: promoFields()})
		require.NoError(t, err)

		assert.Equal(t, "promo-estate", def.ID)
		assert.True(t, def.IsCustom)
		require.NotNil(t, def.CreatedAt)
		assert.Equal(t, fixedNow, *def.CreatedAt)
		assert.Equal(t, map[string]any{"title": "", "items": []any{}}, def.DefaultData)
		store.AssertExpectations(t)
	})

	t.Run("taken ids get numeric suffixes", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("promo")).Return(storage.ErrConflict).Once()
		store.On("Create", ctx, withID("promo-1")).Return(storage.ErrConflict).Once()
		store.On("Create", ctx, withID("promo-2")).Return(nil).Once()

		def, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Promo", Fields: promoFields()})
		require.NoError(t, err)
		assert.Equal(t, "promo-2", def.ID)
		store.AssertExpectations(t)
	})

	t.Run("predefined id is skipped", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("hero-1")).Return(nil).Once()

		def, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Hero", Fields: promoFields()})
		require.NoError(t, err)
		assert.Equal(t, "hero-1", def.ID)
		store.AssertExpectations(t)
	})

	t.Run("accented name keeps only ascii alphanumerics", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("caff-citt")).Return(nil).Once()

		def, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Caffè Città", Fields: promoFields()})
		require.NoError(t, err)
		assert.Equal(t, "caff-citt", def.ID)
		store.AssertExpectations(t)
	})

	t.Run("name without alphanumerics", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("block")).Return(nil).Once()

		def, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "!!!", Fields: promoFields()})
		require.NoError(t, err)
		assert.Equal(t, "block", def.ID)
	})

	t.Run("invalid definition", func(t *testing.T) {
		svc, store := newTestRegistry(t)

		_, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Broken", Fields: []models.FieldDefinition{
			{ID: "g", Label: "Group", Type: models.FieldGroup},
		}})
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		boom := errors.New("connection refused")
		store.On("Create", ctx, withID("promo")).Return(boom).Once()

		_, err := svc.Create(ctx, models.BlockTypeDefinition{Name: "Promo", Fields: promoFields()})
		assert.ErrorIs(t, err, boom)
	})
}

func TestRegistryService_PredefinedAreReadOnly(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestRegistry(t)

	name := "Copertina"
	_, err := svc.Update(ctx, "cover", dto.UpdateBlockTypeRequest{Name: &name})
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = svc.Delete(ctx, "cover")
	assert.ErrorIs(t, err, models.ErrForbidden)

	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRegistryService_Update(t *testing.T) {
	ctx := context.Background()
	created := fixedNow.Add(-time.Hour)
	stored := models.BlockTypeDefinition{
		ID:          "promo",
		Name:        "Promo",
		Fields:      promoFields(),
		DefaultData: map[string]any{"title": "", "items": []any{}},
		IsCustom:    true,
		CreatedAt:   &created,
	}

	t.Run("merges and regenerates defaults", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Get", ctx, "promo").Return(stored, nil).Once()
		store.On("Update", ctx, mock.AnythingOfType("models.BlockTypeDefinition")).Return(nil).Once()

		name := "Promo estiva"
		updated, err := svc.Update(ctx, "promo", dto.UpdateBlockTypeRequest{
			Name: &name,
			Fields: []models.FieldDefinition{
				{ID: "headline", Label: "Titolo", Type: models.FieldText},
				{ID: "cta", Label: "CTA", Type: models.FieldGroup, Fields: []models.FieldDefinition{
					{ID: "url", Label: "URL", Type: models.FieldText},
				}},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "promo", updated.ID)
		assert.Equal(t, "Promo estiva", updated.Name)
		assert.Equal(t, map[string]any{"headline": "", "cta": map[string]any{}}, updated.DefaultData)
		assert.Equal(t, created, *updated.CreatedAt)
		require.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, fixedNow, *updated.UpdatedAt)
		store.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Get", ctx, "ghost").Return(models.BlockTypeDefinition{}, storage.ErrNotFound).Once()

		_, err := svc.Update(ctx, "ghost", dto.UpdateBlockTypeRequest{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRegistryService_Duplicate(t *testing.T) {
	ctx := context.Background()

	t.Run("predefined becomes custom", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Create", ctx, withID("hero-scuro")).Return(nil).Once()

		dup, err := svc.Duplicate(ctx, "hero", "Hero scuro")
		require.NoError(t, err)

		assert.Equal(t, "hero-scuro", dup.ID)
		assert.Equal(t, "Hero scuro", dup.Name)
		assert.True(t, dup.IsCustom)

		hero, err := svc.Get(ctx, "hero")
		require.NoError(t, err)
		assert.Equal(t, hero.Fields, dup.Fields)
		assert.False(t, hero.IsCustom)
	})

	t.Run("unknown source", func(t *testing.T) {
		svc, store := newTestRegistry(t)
		store.On("Get", ctx, "ghost").Return(models.BlockTypeDefinition{}, storage.ErrNotFound).Once()

		_, err := svc.Duplicate(ctx, "ghost", "Copia")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRegistryService_All(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestRegistry(t)

	custom := models.BlockTypeDefinition{ID: "promo", Name: "Promo", Fields: promoFields(), IsCustom: true}
	shadow := models.BlockTypeDefinition{ID: "cover", Name: "Fake cover", IsCustom: true}
	store.On("List", ctx).Return([]models.BlockTypeDefinition{custom, shadow}, nil)

	defs, err := svc.All(ctx)
	require.NoError(t, err)

	catalog := schema.MustDefaultCatalog()
	require.Len(t, defs, catalog.Len()+1)
	assert.Equal(t, "cover", defs[0].ID)
	assert.False(t, defs[0].IsCustom)
	assert.Equal(t, "promo", defs[len(defs)-1].ID)

	byID, err := svc.AllByID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cover", byID["cover"].Name)
	assert.Contains(t, byID, "promo")
}

func TestRegistryService_IsCustomAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestRegistry(t)

	store.On("Exists", ctx, "promo").Return(true, nil).Once()
	store.On("Delete", ctx, "promo").Return(nil).Once()
	store.On("Delete", ctx, "ghost").Return(storage.ErrNotFound).Once()

	ok, err := svc.IsCustom(ctx, "cover")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsCustom(ctx, "promo")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, svc.Delete(ctx, "promo"))
	assert.ErrorIs(t, svc.Delete(ctx, "ghost"), storage.ErrNotFound)
	store.AssertExpectations(t)
}

func TestRegistryService_DefaultsAndValidate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestRegistry(t)

	defaults, err := svc.Defaults(ctx, "cover")
	require.NoError(t, err)
	assert.Equal(t, []any{}, defaults["images"])
	assert.Equal(t, "", defaults["title"])

	err = svc.Validate(ctx, "cover", map[string]any{"images": []any{}})
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))

	err = svc.Validate(ctx, "cover", map[string]any{"images": []any{"https://cdn.example.com/a.jpg"}})
	assert.NoError(t, err)
}
