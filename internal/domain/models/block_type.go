package models

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldType is the tag of a field definition. Every consumer (defaults,
// payload validation, form rendering) switches on it.
type FieldType string

const (
	FieldText         FieldType = "text"
	FieldTextarea     FieldType = "textarea"
	FieldImage        FieldType = "image"
	FieldImageList    FieldType = "image-list"
	FieldImageGallery FieldType = "image-gallery"
	FieldRepeater     FieldType = "repeater"
	FieldGroup        FieldType = "group"
	FieldSelect       FieldType = "select"
)

var fieldTypes = []interface{}{
	FieldText, FieldTextarea, FieldImage, FieldImageList,
	FieldImageGallery, FieldRepeater, FieldGroup, FieldSelect,
}

// IsTextLike reports whether values of the field are plain strings.
func (t FieldType) IsTextLike() bool {
	switch t {
	case FieldText, FieldTextarea, FieldImage, FieldSelect:
		return true
	}
	return false
}

// IsListLike reports whether values of the field are ordered lists.
func (t FieldType) IsListLike() bool {
	switch t {
	case FieldImageList, FieldImageGallery, FieldRepeater:
		return true
	}
	return false
}

// IsContainer reports whether the field carries nested field definitions.
func (t FieldType) IsContainer() bool {
	return t == FieldRepeater || t == FieldGroup
}

type FieldValidation struct {
	MinLength *int `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinItems  *int `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems  *int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

type SelectOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type FieldDefinition struct {
	ID         string            `json:"id" yaml:"id"`
	Label      string            `json:"label" yaml:"label"`
	Type       FieldType         `json:"type" yaml:"type"`
	Required   bool              `json:"required" yaml:"required"`
	Help       string            `json:"help,omitempty" yaml:"help,omitempty"`
	Validation *FieldValidation  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Fields     []FieldDefinition `json:"fields,omitempty" yaml:"fields,omitempty"`
	Options    []SelectOption    `json:"options,omitempty" yaml:"options,omitempty"`
}

// BlockTypeDefinition describes one kind of block: its fields, their
// defaults and rules. Predefined definitions come from the compiled catalog
// and are read-only; custom ones live in the block type store.
type BlockTypeDefinition struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Icon        string            `json:"icon" yaml:"icon"`
	Category    string            `json:"category" yaml:"category"`
	Tags        []string          `json:"tags" yaml:"tags"`
	Gradient    string            `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	SchemaType  string            `json:"schemaType,omitempty" yaml:"schemaType,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	DefaultData map[string]any    `json:"defaultData" yaml:"-"`
	IsCustom    bool              `json:"isCustom" yaml:"-"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty" yaml:"-"`
}

var fieldIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks the structural rules of a definition. It does not check the
// id, which is minted by the registry.
func (d BlockTypeDefinition) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&d.Description, validation.RuneLength(0, 500)),
		validation.Field(&d.Fields, validation.Required, validation.By(uniqueFieldIDs)),
	)
}

// Validate checks a single field and, recursively, its nested fields.
func (f FieldDefinition) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.ID, validation.Required, validation.Match(fieldIDPattern)),
		validation.Field(&f.Label, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In(fieldTypes...)),
		validation.Field(&f.Fields,
			validation.When(f.Type.IsContainer(), validation.Required, validation.By(uniqueFieldIDs)).
				Else(validation.Empty.Error("only repeater and group fields may define nested fields")),
		),
		validation.Field(&f.Options,
			validation.When(f.Type == FieldSelect, validation.Required).
				Else(validation.Empty.Error("only select fields may define options")),
		),
		validation.Field(&f.Validation, validation.By(f.validationRules)),
	)
}

func (f FieldDefinition) validationRules(value interface{}) error {
	v, _ := value.(*FieldValidation)
	if v == nil {
		return nil
	}

	if (v.MinLength != nil || v.MaxLength != nil) && !f.Type.IsTextLike() {
		return errors.New("minLength/maxLength apply to text fields only")
	}
	if (v.MinItems != nil || v.MaxItems != nil) && !f.Type.IsListLike() {
		return errors.New("minItems/maxItems apply to list fields only")
	}
	if negative(v.MinLength) || negative(v.MaxLength) || negative(v.MinItems) || negative(v.MaxItems) {
		return errors.New("bounds must not be negative")
	}
	if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
		return errors.New("minLength must not exceed maxLength")
	}
	if v.MinItems != nil && v.MaxItems != nil && *v.MinItems > *v.MaxItems {
		return errors.New("minItems must not exceed maxItems")
	}

	return nil
}

func uniqueFieldIDs(value interface{}) error {
	fields, _ := value.([]FieldDefinition)

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			continue
		}
		if _, ok := seen[f.ID]; ok {
			return errors.New("duplicate field id '" + f.ID + "'")
		}
		seen[f.ID] = struct{}{}
	}

	return nil
}

func negative(p *int) bool {
	return p != nil && *p < 0
}

// FieldIDs returns the ids of the top level fields in declaration order.
func (d BlockTypeDefinition) FieldIDs() []string {
	ids := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		ids = append(ids, f.ID)
	}
	return ids
}

// Field looks up a top level field by id.
func (d BlockTypeDefinition) Field(id string) (FieldDefinition, bool) {
	for _, f := range d.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}
