package dto

import "magazine_cms/internal/domain/models"

type CreateBlockTypeRequest struct {
	Name        string                   `json:"name" validate:"required,max=100"`
	Description string                   `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        string                   `json:"icon,omitempty"`
	Category    string                   `json:"category,omitempty"`
	Tags        []string                 `json:"tags,omitempty"`
	Gradient    string                   `json:"gradient,omitempty"`
	SchemaType  string                   `json:"schemaType,omitempty"`
	Fields      []models.FieldDefinition `json:"fields" validate:"required"`
}

func (r CreateBlockTypeRequest) ToDomain() models.BlockTypeDefinition {
	return models.BlockTypeDefinition{
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Category:    r.Category,
		Tags:        r.Tags,
		Gradient:    r.Gradient,
		SchemaType:  r.SchemaType,
		Fields:      r.Fields,
	}
}

// UpdateBlockTypeRequest carries a partial update; nil members keep the
// stored value.
type UpdateBlockTypeRequest struct {
	Name        *string                  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string                  `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string                  `json:"icon,omitempty"`
	Category    *string                  `json:"category,omitempty"`
	Tags        []string                 `json:"tags,omitempty"`
	Gradient    *string                  `json:"gradient,omitempty"`
	SchemaType  *string                  `json:"schemaType,omitempty"`
	Fields      []models.FieldDefinition `json:"fields,omitempty"`
}

type DuplicateBlockTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ValidatePayloadRequest struct {
	Data map[string]any `json:"data"`
}
