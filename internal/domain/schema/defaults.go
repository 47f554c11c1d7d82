package schema

import "magazine_cms/internal/domain/models"

// DefaultValue returns the empty value for a field type: "" for text-like
// fields, an empty list for list-like fields and an empty object for groups.
func DefaultValue(f models.FieldDefinition) any {
	switch f.Type {
	case models.FieldImageList, models.FieldImageGallery, models.FieldRepeater:
		return []any{}
	case models.FieldGroup:
		return map[string]any{}
	default:
		return ""
	}
}

// DefaultData builds the default payload for a list of fields.
func DefaultData(fields []models.FieldDefinition) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.ID] = DefaultValue(f)
	}
	return out
}

// FillDefaults returns a copy of data where every declared field that is
// missing gets its default value. Supplied values are never overwritten and
// unknown keys are kept so validation can report them.
func FillDefaults(def models.BlockTypeDefinition, data map[string]any) map[string]any {
	out := CloneData(data)
	if out == nil {
		out = make(map[string]any, len(def.Fields))
	}

	for _, f := range def.Fields {
		if _, ok := out[f.ID]; !ok {
			out[f.ID] = DefaultValue(f)
		}
	}

	return out
}
