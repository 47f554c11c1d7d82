package models

import (
	"time"

	"github.com/google/uuid"
)

// ParentType names the document kind that owns a block sequence.
type ParentType string

const (
	ParentMagazine  ParentType = "magazine"
	ParentChildPage ParentType = "child_page"
)

// BlockParent identifies the document that owns a block sequence.
type BlockParent struct {
	Type ParentType
	ID   uuid.UUID
}

func MagazineParent(id uuid.UUID) BlockParent {
	return BlockParent{Type: ParentMagazine, ID: id}
}

func ChildPageParent(id uuid.UUID) BlockParent {
	return BlockParent{Type: ParentChildPage, ID: id}
}

func (p BlockParent) String() string {
	return string(p.Type) + ":" + p.ID.String()
}

// Block is one ordered unit of content. Data holds the payload whose keys are
// the field ids of the block's type definition.
type Block struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	ParentType ParentType     `db:"parent_type" json:"parentType"`
	ParentID   uuid.UUID      `db:"parent_id" json:"parentId"`
	Type       string         `db:"type" json:"type"`
	Position   int            `db:"position" json:"position"`
	Visible    bool           `db:"visible" json:"visible"`
	Data       map[string]any `db:"data" json:"data"`
	CreatedAt  time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

func (b Block) Parent() BlockParent {
	return BlockParent{Type: b.ParentType, ID: b.ParentID}
}
