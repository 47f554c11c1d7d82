package schema

import (
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"magazine_cms/internal/domain/models"
)

// ValidatePayload checks data against the fields of def. Every violation is
// collected; the result is nil or a *models.ValidationError.
//
// Keys that the definition does not declare are rejected at every level.
// Optional fields left empty skip the length and item-count bounds.
func ValidatePayload(def models.BlockTypeDefinition, data map[string]any) error {
	ve := &models.ValidationError{}
	validateObject(ve, "", def.Fields, data)
	return ve.OrNil()
}

func validateObject(ve *models.ValidationError, prefix string, fields []models.FieldDefinition, obj map[string]any) {
	declared := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		declared[f.ID] = struct{}{}
		validateField(ve, childPath(prefix, f.ID), f, obj[f.ID])
	}

	unknown := make([]string, 0)
	for k := range obj {
		if _, ok := declared[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)

	for _, k := range unknown {
		ve.Add(childPath(prefix, k), "unknown field")
	}
}

func validateField(ve *models.ValidationError, path string, f models.FieldDefinition, value any) {
	if isEmpty(value) {
		if f.Required {
			ve.Add(path, "is required")
		}
		return
	}

	switch {
	case f.Type.IsTextLike():
		validateText(ve, path, f, value)
	case f.Type.IsListLike():
		validateList(ve, path, f, value)
	case f.Type == models.FieldGroup:
		obj, ok := asObject(value)
		if !ok {
			ve.Add(path, "must be an object")
			return
		}
		validateObject(ve, path, f.Fields, obj)
	default:
		ve.Add(path, fmt.Sprintf("unsupported field type %q", f.Type))
	}
}

func validateText(ve *models.ValidationError, path string, f models.FieldDefinition, value any) {
	s, ok := value.(string)
	if !ok {
		ve.Add(path, "must be a string")
		return
	}

	if v := f.Validation; v != nil {
		n := utf8.RuneCountInString(s)
		if v.MinLength != nil && n < *v.MinLength {
			ve.Add(path, fmt.Sprintf("must be at least %d characters", *v.MinLength))
		}
		if v.MaxLength != nil && n > *v.MaxLength {
			ve.Add(path, fmt.Sprintf("must be at most %d characters", *v.MaxLength))
		}
	}

	if f.Type == models.FieldSelect && !hasOption(f.Options, s) {
		ve.Add(path, fmt.Sprintf("must be one of %v", optionValues(f.Options)))
	}
}

func validateList(ve *models.ValidationError, path string, f models.FieldDefinition, value any) {
	items, ok := asList(value)
	if !ok {
		ve.Add(path, "must be a list")
		return
	}

	if v := f.Validation; v != nil {
		if v.MinItems != nil && len(items) < *v.MinItems {
			ve.Add(path, fmt.Sprintf("must contain at least %d items", *v.MinItems))
		}
		if v.MaxItems != nil && len(items) > *v.MaxItems {
			ve.Add(path, fmt.Sprintf("must contain at most %d items", *v.MaxItems))
		}
	}

	for i, item := range items {
		itemPath := path + "[" + strconv.Itoa(i) + "]"

		switch f.Type {
		case models.FieldImageList:
			if _, ok := item.(string); !ok {
				ve.Add(itemPath, "must be a string")
			}
		case models.FieldImageGallery:
			validateGalleryItem(ve, itemPath, item)
		case models.FieldRepeater:
			obj, ok := asObject(item)
			if !ok {
				ve.Add(itemPath, "must be an object")
				continue
			}
			validateObject(ve, itemPath, f.Fields, obj)
		}
	}
}

// Gallery items are either an image URL or an object with at least a "src"
// or "url" key.
func validateGalleryItem(ve *models.ValidationError, path string, item any) {
	if _, ok := item.(string); ok {
		return
	}

	obj, ok := asObject(item)
	if !ok {
		ve.Add(path, "must be a string or an object")
		return
	}
	if isEmpty(obj["src"]) && isEmpty(obj["url"]) {
		ve.Add(path, "src is required")
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	if items, ok := asList(value); ok {
		return len(items) == 0
	}

	return false
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, true
	}
	return nil, false
}

func asObject(value any) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	return m, ok
}

func hasOption(options []models.SelectOption, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func optionValues(options []models.SelectOption) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		out = append(out, o.Value)
	}
	return out
}

func childPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
