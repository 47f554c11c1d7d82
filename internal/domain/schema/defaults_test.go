package schema

import (
	"context"
	"testing"

	"magazine_cms/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		fieldType models.FieldType
		want      any
	}{
		{models.FieldText, ""},
		{models.FieldTextarea, ""},
		{models.FieldImage, ""},
		{models.FieldSelect, ""},
		{models.FieldImageList, []any{}},
		{models.FieldImageGallery, []any{}},
		{models.FieldRepeater, []any{}},
		{models.FieldGroup, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue(models.FieldDefinition{Type: tt.fieldType}))
		})
	}
}

func TestFillDefaults(t *testing.T) {
	def := MustDefaultCatalog()
	hero, err := def.Get(context.Background(), "hero")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("adds missing fields", func(t *testing.T) {
		got := FillDefaults(hero, map[string]any{"title": "Summer"})

		assert.Equal(t, map[string]any{
			"title":    "Summer",
			"subtitle": "",
			"image":    "",
			"layout":   "",
			"cta":      map[string]any{},
		}, got)
	})

	t.Run("never overwrites supplied values", func(t *testing.T) {
		got := FillDefaults(hero, map[string]any{"layout": "split", "cta": map[string]any{"label": "Go"}})

		assert.Equal(t, "split", got["layout"])
		assert.Equal(t, map[string]any{"label": "Go"}, got["cta"])
	})

	t.Run("keeps unknown keys and does not mutate input", func(t *testing.T) {
		in := map[string]any{"bogus": 1}
		got := FillDefaults(hero, in)

		assert.Equal(t, 1, got["bogus"])
		assert.Len(t, in, 1)
	})

	t.Run("nil payload", func(t *testing.T) {
		got := FillDefaults(hero, nil)
		assert.Len(t, got, len(hero.Fields))
	})
}
