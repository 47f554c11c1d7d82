package schema

import "magazine_cms/internal/domain/models"

// Clone deep-copies a definition, including nested fields and default data.
func Clone(def models.BlockTypeDefinition) models.BlockTypeDefinition {
	out := def
	if def.Tags != nil {
		out.Tags = append(make([]string, 0, len(def.Tags)), def.Tags...)
	}
	out.Fields = cloneFields(def.Fields)
	out.DefaultData = CloneData(def.DefaultData)
	if def.CreatedAt != nil {
		t := *def.CreatedAt
		out.CreatedAt = &t
	}
	if def.UpdatedAt != nil {
		t := *def.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func cloneFields(fields []models.FieldDefinition) []models.FieldDefinition {
	if fields == nil {
		return nil
	}

	out := make([]models.FieldDefinition, len(fields))
	for i, f := range fields {
		out[i] = f
		out[i].Fields = cloneFields(f.Fields)
		out[i].Options = append([]models.SelectOption(nil), f.Options...)
		if f.Validation != nil {
			v := *f.Validation
			v.MinLength = cloneInt(f.Validation.MinLength)
			v.MaxLength = cloneInt(f.Validation.MaxLength)
			v.MinItems = cloneInt(f.Validation.MinItems)
			v.MaxItems = cloneInt(f.Validation.MaxItems)
			out[i].Validation = &v
		}
	}
	return out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloneData deep-copies a decoded JSON payload.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	return cloneValue(data).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []map[string]any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	default:
		return v
	}
}
