package model

import "time"

// NodeType classifies a content node.
type NodeType string

const (
	NodeTypeCategory    NodeType = "category"
	NodeTypeSubcategory NodeType = "subcategory"
	NodeTypeTopic       NodeType = "topic"
)

// Node is a hierarchical content classification entry. ParentID links it to
// its parent node; nil marks a root.
type Node struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Type      NodeType   `json:"type"`
	ParentID  *string    `json:"parentId"`
	CreatedBy string     `json:"createdBy,omitempty"`
	UpdatedBy string     `json:"updatedBy,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (n Node) GetID() string { return n.ID }

// NodeInput is the create/update payload for nodes.
type NodeInput struct {
	Name     string   `json:"name" validate:"required"`
	Type     NodeType `json:"type" validate:"required,oneof=category subcategory topic"`
	ParentID *string  `json:"parentId" validate:"omitempty,objectid"`
}
